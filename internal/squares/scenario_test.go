package squares

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/squares/internal/randutil"
)

// TestSevenPlayerGame walks a board from sign-up to a recorded final.
func TestSevenPlayerGame(t *testing.T) {
	s := newTestState(t, 7)
	assert.Equal(t, 14, s.BaseQuota())
	assert.Equal(t, 2, s.Remainder())

	fillBase(t, s)
	require.True(t, s.IsBaseRoundComplete())
	require.Equal(t, 2, s.UnclaimedCount())

	extras, err := s.AssignExtras(randutil.New(7))
	require.NoError(t, err)
	require.Len(t, extras, 2)
	for i, idx := range s.unclaimedIndexes() {
		require.NoError(t, s.PlaceForPlayer(extras[i], s.Board[idx].Cell()))
	}
	require.Equal(t, 0, s.UnclaimedCount())
	for _, p := range s.Players {
		assert.Equal(t, s.QuotaFor(p.ID), s.ClaimedCount(p.ID), p.Name)
	}

	require.NoError(t, s.Lock(randutil.New(7)))
	s.RowNumbers = []int{8, 2, 5, 1, 9, 0, 3, 4, 6, 7}
	s.ColNumbers = []int{3, 7, 1, 9, 0, 2, 4, 5, 6, 8}

	res, err := s.ComputeWinner(Final, 17, 14)
	require.NoError(t, err)
	assert.Equal(t, 9, res.Row)
	assert.Equal(t, 6, res.Col)
	// Square 96 sits in the last base run (84-97).
	assert.Equal(t, "id-6", res.PlayerID)

	rec, err := s.RecordWinner(Final, 17, 14, time.Date(2025, 2, 9, 23, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, "p6", *rec.WinningPlayerName)
	assert.Nil(t, rec.PayoutAmount)
	require.NoError(t, s.Validate())
}
