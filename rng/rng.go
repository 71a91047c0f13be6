// Package rng provides the random source threaded through every stochastic
// decision in the simulation.
package rng

import (
	"fmt"
	"math/rand"
)

// Source supplies the random draws the simulation needs.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). n must be positive.
	IntN(n int) int
	// Bool returns a uniform boolean.
	Bool() bool
}

// Rand is a seeded Source backed by math/rand.
type Rand struct {
	r    *rand.Rand
	seed int64
}

// New creates a deterministic Source from seed.
func New(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed returns the seed the source was created with.
func (r *Rand) Seed() int64 { return r.seed }

func (r *Rand) Float64() float64 { return r.r.Float64() }

func (r *Rand) IntN(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("rng: IntN called with non-positive bound %d", n))
	}
	return r.r.Intn(n)
}

func (r *Rand) Bool() bool { return r.r.Intn(2) == 1 }
