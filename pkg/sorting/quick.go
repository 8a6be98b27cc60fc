package sorting

import (
	"cmp"

	"github.com/Mindburn-Labs/sortbench/pkg/stats"
)

// QuickSort partitions around the first element of each subrange, with the
// default depth limit. Already ascending or descending input degrades it to
// Θ(N²) comparisons and recursion depth N.
func QuickSort[T cmp.Ordered](data []T, c *stats.Counter) {
	quickSortLimited(data, c, DefaultMaxDepth)
}

func quickSortLimited[T cmp.Ordered](data []T, c *stats.Counter, limit int) {
	quickSortRec(data, c, 0, len(data)-1, 1, limit)
}

func quickSortRec[T cmp.Ordered](a []T, c *stats.Counter, lo, hi, depth, limit int) {
	if lo >= hi {
		return
	}
	if depth > limit {
		panic(&DepthError{Algorithm: Quick, Limit: limit})
	}
	j := partition(a, c, lo, hi)
	quickSortRec(a, c, lo, j-1, depth+1, limit)
	quickSortRec(a, c, j+1, hi, depth+1, limit)
}

// partition uses a[lo] as pivot and returns its final index. Each test by
// either scan pointer is one comparison; each inner exchange and the final
// pivot placement are one swap each.
func partition[T cmp.Ordered](a []T, c *stats.Counter, lo, hi int) int {
	pivot := a[lo]
	i, j := lo+1, hi
	for {
		for i <= j {
			c.Compare()
			if a[i] > pivot {
				break
			}
			i++
		}
		for j >= i {
			c.Compare()
			if a[j] < pivot {
				break
			}
			j--
		}
		if i >= j {
			break
		}
		a[i], a[j] = a[j], a[i]
		c.Swap()
	}
	a[lo], a[j] = a[j], a[lo]
	c.Swap()
	return j
}
