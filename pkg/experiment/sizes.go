package experiment

import (
	"slices"
	"strconv"
	"strings"

	"github.com/Mindburn-Labs/sortbench/pkg/sorting"
)

var (
	quadraticSizes = []int{100, 1000, 5000, 10000, 20000}
	defaultSizes   = []int{100, 1000, 10000, 50000, 100000}
)

// DefaultSizes returns the size list used when none is given. Quadratic
// algorithms stop at the default quadratic limit.
func DefaultSizes(alg sorting.Algorithm) []int {
	if alg.Quadratic() {
		return slices.Clone(quadraticSizes)
	}
	return slices.Clone(defaultSizes)
}

// ParseSizes parses a comma-separated size list. Blank entries are ignored.
// When raw holds no sizes, or any entry is malformed or negative, it returns
// DefaultSizes(alg) and false.
func ParseSizes(raw string, alg sorting.Algorithm) ([]int, bool) {
	var sizes []int
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return DefaultSizes(alg), false
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return DefaultSizes(alg), false
	}
	return sizes, true
}
