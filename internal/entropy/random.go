// Package entropy provides the seeded random source threaded through every
// stochastic call in a run. One Source per simulation; nothing in the module
// touches the global math/rand source.
package entropy

import (
	"math/rand"
)

// Source is a deterministic pseudo-random stream.
type Source struct {
	seed int64
	rng  *rand.Rand
}

// New creates a source seeded with seed. The same seed always yields the
// same sequence of draws.
func New(seed int64) *Source {
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed this source was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Float64 returns a float in [0, 1).
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// Uniform returns a float in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// Chance reports whether a Bernoulli trial with probability p succeeds.
func (s *Source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return s.rng.Float64() < p
}

// Intn returns an int in [0, n). Returns 0 when n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}

// Pick returns a uniformly chosen index into a collection of length n,
// or -1 for an empty collection.
func (s *Source) Pick(n int) int {
	if n <= 0 {
		return -1
	}
	return s.rng.Intn(n)
}

// Sample returns k distinct indices from [0, n) in draw order.
// k is capped at n.
func (s *Source) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	perm := s.rng.Perm(n)
	return perm[:k]
}

// Int63 returns a non-negative 63-bit integer, used to derive seeds for
// auxiliary generators (noise fields).
func (s *Source) Int63() int64 {
	return s.rng.Int63()
}
