package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	// the first period matches base + i*step + (i%7)*increment exactly
	for i := 0; i < Period; i++ {
		want := int64(Base + i*Step + (i%Period)*Increment)
		assert.Equal(t, want, Value(i), "i=%d", i)
	}

	tests := []struct {
		i    int
		want int64
	}{
		{0, 17},
		{1, 25},
		{6, 65},
		{7, 68},
		{8, 76},
		{13, 116},
		{14, 119},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Value(tt.i), "i=%d", tt.i)
	}
}

func TestFillSortedNonDecreasing(t *testing.T) {
	for _, n := range []int{1, 2, 6, 7, 8, 13, 14, 15, 100, 1000, 4097} {
		a := make([]int32, n)
		FillSorted(a)
		for i := 1; i < n; i++ {
			if a[i-1] > a[i] {
				t.Fatalf("n=%d: a[%d]=%d > a[%d]=%d", n, i-1, a[i-1], i, a[i])
			}
			gap := a[i] - a[i-1]
			if gap != Step && gap != Step+Increment {
				t.Fatalf("n=%d: unexpected gap %d at %d", n, gap, i)
			}
		}
	}
}

func TestFillSortedDeterministic(t *testing.T) {
	a := make([]int32, 500)
	b := make([]int32, 500)
	FillSorted(a)
	FillSorted(b)
	assert.Equal(t, a, b)
}

func TestFits(t *testing.T) {
	assert.False(t, Fits(0))
	assert.False(t, Fits(-1))
	assert.True(t, Fits(1))
	assert.True(t, Fits(1<<28))
	assert.False(t, Fits(math.MaxInt32))

	// find the boundary and check it is tight
	lo, hi := 1, math.MaxInt32
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if Fits(mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	require.True(t, Fits(lo))
	require.False(t, Fits(lo+1))
	assert.LessOrEqual(t, Value(lo-1), int64(math.MaxInt32))
}

func TestFillKeys(t *testing.T) {
	const upper = 2000
	keys := make([]int32, 10000)
	FillKeys(keys, upper, NewRand(42))

	seen := make(map[int32]bool)
	for _, k := range keys {
		require.GreaterOrEqual(t, k, int32(0))
		require.Less(t, k, int32(upper))
		seen[k] = true
	}
	// 10000 draws over 2000 values leaves very few untouched
	assert.Greater(t, len(seen), upper*9/10)
}

func TestFillKeysSeeded(t *testing.T) {
	a := make([]int32, 256)
	b := make([]int32, 256)
	c := make([]int32, 256)
	FillKeys(a, 1<<20, NewRand(7))
	FillKeys(b, 1<<20, NewRand(7))
	FillKeys(c, 1<<20, NewRand(8))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestFillKeysUpperOne(t *testing.T) {
	keys := make([]int32, 64)
	FillKeys(keys, 1, NewRand(1))
	for _, k := range keys {
		assert.Zero(t, k)
	}
}
