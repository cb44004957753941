// Package rng provides the seeded pseudo-random source used by map generation.
//
// A Rand is built from a seed string and yields a reproducible sequence: the
// string is hashed to a signed 32-bit value which then drives a linear
// congruential generator. Two Rands with the same seed produce the same values
// for as long as they are consumed in the same order.
package rng

import (
	"math"
	"unicode/utf16"
)

// LCG parameters (Numerical Recipes).
const (
	multiplier = 1664525
	increment  = 1013904223
	modulus    = 4294967296 // 2^32
)

// Rand is a deterministic random source. It is not safe for concurrent use;
// each generation run owns its own instance.
type Rand struct {
	seed  string
	state int64
}

// New creates a Rand seeded from the given string.
func New(seed string) *Rand {
	return &Rand{seed: seed, state: int64(hashString(seed))}
}

// hashString folds UTF-16 code units into a wrapping int32 (h*31 + c).
func hashString(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	return h
}

// Seed returns the seed string the source was created with.
func (r *Rand) Seed() string {
	return r.seed
}

// Fork returns an independent source derived from this source's seed and the
// label. The parent's sequence is not advanced.
func (r *Rand) Fork(label string) *Rand {
	return New(r.seed + "#" + label)
}

// Float returns a value in [0, 1).
func (r *Rand) Float() float64 {
	// Go's % truncates toward zero, so a negative hash keeps a negative state.
	r.state = (r.state*multiplier + increment) % modulus
	return math.Abs(float64(r.state) / modulus)
}

// Range returns a value in [min, max).
func (r *Rand) Range(min, max float64) float64 {
	return min + r.Float()*(max-min)
}

// Int returns an integer in [min, max], both inclusive.
func (r *Rand) Int(min, max int) int {
	return int(math.Floor(r.Range(float64(min), float64(max+1))))
}

// Shuffle performs a Fisher-Yates shuffle over n elements using swap.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(math.Floor(r.Float() * float64(i+1)))
		swap(i, j)
	}
}

// Pick returns one item chosen uniformly. items must not be empty.
func Pick[T any](r *Rand, items []T) T {
	return items[r.Int(0, len(items)-1)]
}

// WeightedPick returns the first item whose cumulative weight exceeds a draw
// in [0, sum(weights)). It falls back to the first item when no weight is
// positive. weights must be parallel to items.
func WeightedPick[T any](r *Rand, items []T, weights []float64) T {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	x := r.Float() * total
	for i, item := range items {
		if x < weights[i] {
			return item
		}
		x -= weights[i]
	}
	return items[0]
}
