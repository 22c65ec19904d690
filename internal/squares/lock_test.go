package squares

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/squares/internal/randutil"
)

func TestLockAssignsDigitPermutations(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		s := newTestState(t, 4)
		require.NoError(t, s.Lock(randutil.New(seed)))
		require.True(t, s.Locked)

		rows := slices.Clone(s.RowNumbers)
		cols := slices.Clone(s.ColNumbers)
		slices.Sort(rows)
		slices.Sort(cols)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, rows)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, cols)
	}
}

func TestLockScriptedDigits(t *testing.T) {
	s := newTestState(t, 1)
	require.NoError(t, s.Lock(newScripted()))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 0}, s.ColNumbers)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 0}, s.RowNumbers)
}

func TestLockedBoardRejectsClaimChanges(t *testing.T) {
	s := newTestState(t, 2)
	require.NoError(t, s.Claim("id-0", Cell{Row: 0, Col: 0}))
	require.NoError(t, s.Lock(randutil.New(1)))

	assert.ErrorIs(t, s.Claim("id-1", Cell{Row: 1, Col: 1}), ErrBoardLocked)
	assert.ErrorIs(t, s.Unclaim("id-0", Cell{Row: 0, Col: 0}), ErrBoardLocked)
	assert.ErrorIs(t, s.Lock(randutil.New(1)), ErrAlreadyLocked)
}

func TestRelockKeepsDigits(t *testing.T) {
	s := newTestState(t, 2)
	require.NoError(t, s.Lock(randutil.New(1)))
	rows, cols := slices.Clone(s.RowNumbers), slices.Clone(s.ColNumbers)

	require.NoError(t, s.Unlock())
	assert.False(t, s.Locked)
	assert.Equal(t, rows, s.RowNumbers, "unlock leaves digits")
	assert.ErrorIs(t, s.Unlock(), ErrNotLocked)

	require.NoError(t, s.Lock(randutil.New(99)))
	assert.Equal(t, rows, s.RowNumbers)
	assert.Equal(t, cols, s.ColNumbers)
}

func TestRandomizeNumbers(t *testing.T) {
	s := newTestState(t, 4)
	assert.ErrorIs(t, s.RandomizeNumbers(randutil.New(1)), ErrCannotRandomize)

	fillBase(t, s)
	assert.ErrorIs(t, s.RandomizeNumbers(randutil.New(1)), ErrCannotRandomize, "unlocked")

	require.NoError(t, s.Lock(newScripted()))
	_, err := s.RecordWinner(Q1, 1, 1, time.Date(2025, 2, 9, 20, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	require.NoError(t, s.RandomizeNumbers(newScripted(3, 1, 4, 1, 5, 9, 2, 6, 5)))
	assert.NotEqual(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 0}, s.ColNumbers)
	assert.Empty(t, s.Winners)
	require.NoError(t, s.Validate())
}

func TestFlipOrientation(t *testing.T) {
	s := NewState()
	assert.Equal(t, OrientationACols, s.Orientation)
	assert.Equal(t, OrientationARows, s.FlipOrientation())
	assert.Equal(t, OrientationACols, s.FlipOrientation())
}
