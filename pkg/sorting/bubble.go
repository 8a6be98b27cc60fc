package sorting

import (
	"cmp"

	"github.com/Mindburn-Labs/sortbench/pkg/stats"
)

// BubbleSort repeatedly exchanges adjacent out-of-order pairs. Each pass
// scans one element fewer than the last and the sort stops after the first
// pass without an exchange.
func BubbleSort[T cmp.Ordered](data []T, c *stats.Counter) {
	n := len(data)
	for i := 0; i < n; i++ {
		swapped := false
		for j := 0; j < n-1-i; j++ {
			c.Compare()
			if data[j] > data[j+1] {
				data[j], data[j+1] = data[j+1], data[j]
				c.Swap()
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
}
