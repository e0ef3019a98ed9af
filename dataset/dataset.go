// Package dataset generates the sorted array and the lookup keys searched by
// the benchmark.
package dataset

import (
	"math"
	"math/rand/v2"
)

const (
	Base      = 17
	Step      = 3
	Increment = 5
	Period    = 7
)

// Value returns the i-th element of the generated array.
//
// Within a period it follows Base + i*Step + (i%Period)*Increment. The
// increments of finished periods are carried forward so the sequence never
// drops at a period boundary: neighbours differ by Step+Increment inside a
// period and by Step across one.
func Value(i int) int64 {
	n := int64(i)
	p := int64(Period)
	return Base + n*Step + Increment*((p-1)*(n/p)+n%p)
}

// Fits reports whether an array of n elements and its key range [0, 2n)
// can be represented as int32.
func Fits(n int) bool {
	if n < 1 {
		return false
	}
	return Value(n-1) <= math.MaxInt32 && 2*int64(n) <= math.MaxInt32
}

// FillSorted writes Value(i) into dst[i]. The result is strictly increasing.
// Callers must check Fits(len(dst)) first.
func FillSorted(dst []int32) {
	for i := range dst {
		dst[i] = int32(Value(i))
	}
}

// NewRand returns a PCG-backed generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// FillKeys fills dst with values drawn uniformly from [0, upper).
// upper must be positive.
func FillKeys(dst []int32, upper int32, r *rand.Rand) {
	for i := range dst {
		dst[i] = r.Int32N(upper)
	}
}
