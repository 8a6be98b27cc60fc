package sorting

import (
	"cmp"

	"github.com/Mindburn-Labs/sortbench/pkg/stats"
)

// MergeSort is a top-down merge sort with the default depth limit.
//
// One comparison is counted per merge step while both halves still hold
// elements. A swap is counted only when the right half's head is taken ahead
// of the left half's; elements taken from the left or copied in the tail
// are not counted.
func MergeSort[T cmp.Ordered](data []T, c *stats.Counter) {
	mergeSortLimited(data, c, DefaultMaxDepth)
}

func mergeSortLimited[T cmp.Ordered](data []T, c *stats.Counter, limit int) {
	if len(data) <= 1 {
		return
	}
	buf := make([]T, len(data))
	mergeSortRec(data, buf, c, 1, limit)
}

func mergeSortRec[T cmp.Ordered](data, buf []T, c *stats.Counter, depth, limit int) {
	if len(data) <= 1 {
		return
	}
	if depth > limit {
		panic(&DepthError{Algorithm: Merge, Limit: limit})
	}
	mid := len(data) / 2
	mergeSortRec(data[:mid], buf[:mid], c, depth+1, limit)
	mergeSortRec(data[mid:], buf[mid:], c, depth+1, limit)
	merge(data, buf, mid, c)
}

// merge combines the sorted halves data[:mid] and data[mid:] using buf as
// scratch space of the same length.
func merge[T cmp.Ordered](data, buf []T, mid int, c *stats.Counter) {
	copy(buf, data)
	left, right := buf[:mid], buf[mid:]
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		c.Compare()
		if left[i] <= right[j] {
			data[k] = left[i]
			i++
		} else {
			data[k] = right[j]
			j++
			c.Swap()
		}
		k++
	}
	k += copy(data[k:], left[i:])
	copy(data[k:], right[j:])
}
