package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for range 16 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}

func TestSeed(t *testing.T) {
	assert.Equal(t, int64(7), Seed(7))
	assert.NotZero(t, Seed(0))
}

func TestDerive(t *testing.T) {
	assert.Equal(t, Derive(9, 3), Derive(9, 3))

	seen := make(map[int64]bool)
	for i := range 100 {
		seen[Derive(9, i)] = true
	}
	assert.Len(t, seen, 100, "child seeds are distinct")
}

func TestRandSatisfiesSource(t *testing.T) {
	var src Source = New(5)
	n := src.IntN(10)
	assert.GreaterOrEqual(t, n, 0)
	assert.Less(t, n, 10)
}
