package cases

import (
	"fmt"
	"math/rand/v2"

	"github.com/Mindburn-Labs/sortbench/pkg/sorting"
)

// Generator produces inputs for (algorithm, case, n) triples.
//
// The zero value and NewGenerator(nil) shuffle with the process-wide random
// source, so average-case inputs are not reproducible across runs. A seeded
// generator is reproducible for a fixed sequence of calls.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator that shuffles with rng, or with the
// process-wide source when rng is nil.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeededGenerator returns a generator with a deterministic PCG source.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Generate returns a fresh input of length n.
func (g *Generator) Generate(alg sorting.Algorithm, c Case, n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, n)
	}
	switch c {
	case Best:
		return BestCase(alg, n), nil
	case Worst:
		return WorstCase(alg, n), nil
	case Average:
		return g.average(n), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCase, string(c))
	}
}

func (g *Generator) average(n int) []int {
	if g == nil || g.rng == nil {
		return AverageCase(n)
	}
	out := ascending(n)
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
