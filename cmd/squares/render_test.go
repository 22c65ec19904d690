package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/squares/internal/config"
	"github.com/lox/squares/internal/randutil"
	"github.com/lox/squares/internal/service"
	"github.com/lox/squares/internal/squares"
)

var testTeams = config.TeamsConfig{A: "Chiefs", B: "Eagles"}

func plainView() *view {
	return newView(&bytes.Buffer{}, true, testTeams)
}

func boardWith(t *testing.T, names ...string) *squares.State {
	t.Helper()
	st := squares.NewState()
	rng := randutil.New(1)
	for i, name := range names {
		_, err := st.AddPlayer(name, string(rune('a'+i)), rng)
		require.NoError(t, err)
	}
	return st
}

func TestBoardShowsUnassignedDigits(t *testing.T) {
	st := boardWith(t, "Alice", "Bob")
	require.NoError(t, st.Claim("a", squares.Cell{Row: 0, Col: 0}))

	out := plainView().Board(st)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, squares.GridSize+3)
	assert.Contains(t, lines[0], "Chiefs")
	assert.Equal(t, squares.GridSize, strings.Count(lines[1], "?"))
	assert.Contains(t, lines[2], "ALI")
	assert.NotContains(t, out, "BOB")
	assert.Contains(t, lines[len(lines)-1], "Eagles")
	assert.NotContains(t, out, "\x1b[", "no escape codes without color")
}

func TestBoardHeaderFollowsOrientation(t *testing.T) {
	v := plainView()
	cols, rows := v.headerTeams(squares.OrientationACols)
	assert.Equal(t, "Chiefs", cols)
	assert.Equal(t, "Eagles", rows)

	cols, rows = v.headerTeams(squares.OrientationARows)
	assert.Equal(t, "Eagles", cols)
	assert.Equal(t, "Chiefs", rows)
}

func TestBoardMarksWinningSquare(t *testing.T) {
	st := boardWith(t, "Alice", "Bob")
	st.Players[0].Initials = "AL"
	require.NoError(t, st.Claim("a", squares.Cell{Row: 2, Col: 5}))
	st.RowNumbers = []int{0, 1, 7, 3, 4, 5, 6, 2, 8, 9}
	st.ColNumbers = []int{0, 1, 2, 3, 5, 4, 6, 7, 8, 9}
	name := "Alice"
	st.Winners = []squares.WinnerRecord{{
		Checkpoint:        squares.Q1,
		ScoreA:            7,
		ScoreB:            14,
		DigitA:            7,
		DigitB:            4,
		WinningPlayerID:   &st.Players[0].ID,
		WinningPlayerName: &name,
	}}

	wins := winningCells(st)
	assert.Equal(t, []squares.Checkpoint{squares.Q1}, wins[squares.Cell{Row: 2, Col: 5}])

	out := plainView().Board(st)
	assert.Contains(t, out, "AL*")
	assert.Contains(t, out, "Winners")
	assert.Contains(t, out, "Chiefs 7 - Eagles 14")
}

func TestWinningCellsNeedsDigits(t *testing.T) {
	st := boardWith(t, "Alice")
	st.Winners = []squares.WinnerRecord{{Checkpoint: squares.Q1}}
	assert.Empty(t, winningCells(st))
}

func TestWinnersListedInCheckpointOrder(t *testing.T) {
	a, b := "Alice", "Bob"
	payout := 25.0
	out := plainView().Winners([]squares.WinnerRecord{
		{Checkpoint: squares.Final, WinningPlayerName: &b},
		{Checkpoint: squares.Q1, WinningPlayerName: &a, PayoutAmount: &payout},
	})
	assert.Less(t, strings.Index(out, "Q1"), strings.Index(out, "Final"))
	assert.Contains(t, out, "$25.00")
}

func TestStatusReportsProgress(t *testing.T) {
	st := boardWith(t, "Alice", "Bob", "Carol")
	require.NoError(t, st.Claim("a", squares.Cell{Row: 0, Col: 0}))

	out := plainView().Status(service.Summarize(st))
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "1/33")
	assert.Contains(t, out, "Base quota:   33 (remainder 1)")
	assert.Contains(t, out, "waiting for base round")
	assert.Contains(t, out, "Winners:      0/4")
}

func TestPlayersTable(t *testing.T) {
	st := boardWith(t, "Alice", "Bob")
	out := plainView().Players(st)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, squares.Palette[0])
	assert.Contains(t, out, "BOB")
}
