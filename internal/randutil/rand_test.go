package randutil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays fixed values, reduced into range, then falls back to 0.
type scripted struct {
	values []int
	index  int
}

func (s *scripted) IntN(n int) int {
	if s.index >= len(s.values) {
		return 0
	}
	v := s.values[s.index] % n
	s.index++
	return v
}

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 20; i++ {
		require.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestPermIsPermutation(t *testing.T) {
	rng := New(7)
	for trial := 0; trial < 200; trial++ {
		p := Perm(rng, 10)
		sorted := slices.Clone(p)
		slices.Sort(sorted)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, sorted)
	}
}

func TestShuffleUsesSourceTopDown(t *testing.T) {
	// With an all-zero source every element i swaps with position 0.
	p := Perm(&scripted{}, 4)
	assert.Equal(t, []int{1, 2, 3, 0}, p)
}

func TestSampleDistinct(t *testing.T) {
	rng := New(99)
	for trial := 0; trial < 100; trial++ {
		got := Sample(rng, 7, 3)
		require.Len(t, got, 3)
		seen := map[int]bool{}
		for _, v := range got {
			require.GreaterOrEqual(t, v, 0)
			require.Less(t, v, 7)
			require.False(t, seen[v], "duplicate index %d", v)
			seen[v] = true
		}
	}
}

func TestSampleScripted(t *testing.T) {
	// Draws are offsets into the unpicked tail: 2 -> index 2, then 0 -> index 1.
	got := Sample(&scripted{values: []int{2, 0}}, 5, 2)
	assert.Equal(t, []int{2, 1}, got)
}

func TestSampleBounds(t *testing.T) {
	assert.Empty(t, Sample(New(1), 5, 0))
	assert.Len(t, Sample(New(1), 3, 10), 3)
}
