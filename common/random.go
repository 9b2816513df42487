package common

import (
	"math/rand"
	"time"
)

// Random is the one source of randomness the sandbox rules draw from.
// *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// NewRandom returns a source seeded with seed, or with the clock when seed is 0.
func NewRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
