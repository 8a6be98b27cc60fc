package sorting

import (
	"cmp"

	"github.com/Mindburn-Labs/sortbench/pkg/stats"
)

// InsertionSort shifts each key left past the larger elements before it.
// Every key comparison counts once and every single-element shift is a swap.
func InsertionSort[T cmp.Ordered](data []T, c *stats.Counter) {
	for i := 1; i < len(data); i++ {
		key := data[i]
		j := i - 1
		for j >= 0 {
			c.Compare()
			if data[j] <= key {
				break
			}
			data[j+1] = data[j]
			c.Swap()
			j--
		}
		data[j+1] = key
	}
}
