package app

import (
	"math/rand"
	"time"
)

// Rand is the randomness consumed by availability draws and booking-reference
// suffixes. Injectable so outcomes are reproducible in tests; *rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

func NewRand(seed int64) Rand { return rand.New(rand.NewSource(seed)) }

func DefaultRand() Rand { return NewRand(time.Now().UnixNano()) }
