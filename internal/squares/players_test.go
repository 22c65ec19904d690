package squares

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/squares/internal/randutil"
)

func TestAddPlayer(t *testing.T) {
	s := NewState()
	rng := randutil.New(1)

	p, err := s.AddPlayer("  Alice  ", "a", rng)
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, Palette[0], p.Color)

	q, err := s.AddPlayer("Bob", "b", rng)
	require.NoError(t, err)
	assert.Equal(t, Palette[1], q.Color)
	assert.Equal(t, []string{"Alice", "Bob"}, []string{s.Players[0].Name, s.Players[1].Name})
}

func TestAddPlayerRejections(t *testing.T) {
	s := NewState()
	rng := randutil.New(1)
	_, err := s.AddPlayer("Alice", "a", rng)
	require.NoError(t, err)

	_, err = s.AddPlayer("   ", "x", rng)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = s.AddPlayer("Alice", "x", rng)
	assert.ErrorIs(t, err, ErrDuplicateName)

	// Names are case-sensitive.
	_, err = s.AddPlayer("alice", "y", rng)
	assert.NoError(t, err)
	assert.Len(t, s.Players, 2)
}

func TestAddPlayerReusesFreedColor(t *testing.T) {
	s := newTestState(t, 3)
	_, err := s.RemovePlayer("id-1")
	require.NoError(t, err)

	p, err := s.AddPlayer("late", "late", randutil.New(1))
	require.NoError(t, err)
	assert.Equal(t, Palette[1], p.Color)
}

func TestAddPlayerPastPaletteSynthesizesColor(t *testing.T) {
	s := newTestState(t, len(Palette))
	p, err := s.AddPlayer("extra", "extra", newScripted(0, 199, 100))
	require.NoError(t, err)
	// Channels are 30+draw: 30, 229, 130.
	assert.Equal(t, "#1ee582", p.Color)
}

func TestAddPlayerRefusedWhenClaimsWouldExceedQuota(t *testing.T) {
	s := newTestState(t, 4)
	fillBase(t, s) // 25 each, base for 5 players is 20

	_, err := s.AddPlayer("late", "late", randutil.New(1))
	assert.ErrorIs(t, err, ErrOverQuota)
	assert.Len(t, s.Players, 4)
}

func TestRenamePlayer(t *testing.T) {
	s := newTestState(t, 2)

	require.NoError(t, s.RenamePlayer("id-0", " Zed "))
	p, _ := s.Player("id-0")
	assert.Equal(t, "Zed", p.Name)

	assert.ErrorIs(t, s.RenamePlayer("id-0", ""), ErrEmptyName)
	assert.ErrorIs(t, s.RenamePlayer("id-0", "p1"), ErrDuplicateName)
	assert.ErrorIs(t, s.RenamePlayer("missing", "new"), ErrUnknownPlayer)

	// Renaming to the current name is allowed.
	assert.NoError(t, s.RenamePlayer("id-0", "Zed"))
}

func TestRemovePlayerReleasesSquaresAndExtras(t *testing.T) {
	s := newTestState(t, 7)
	fillBase(t, s)
	_, err := s.AssignExtras(newScripted(0, 0))
	require.NoError(t, err)
	require.Contains(t, s.ExtraPlayerIDs, "id-0")

	released, err := s.RemovePlayer("id-0")
	require.NoError(t, err)
	assert.Equal(t, 14, released)
	assert.Equal(t, 0, s.ClaimedCount("id-0"))
	assert.NotContains(t, s.ExtraPlayerIDs, "id-0")
	assert.True(t, s.ExtraSquaresAssigned, "extras are not re-run")
	assert.Len(t, s.Players, 6)
	require.NoError(t, s.Validate())

	_, err = s.RemovePlayer("id-0")
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestSetColorAndInitials(t *testing.T) {
	s := newTestState(t, 1)

	require.NoError(t, s.SetColor("id-0", "#000000"))
	require.NoError(t, s.SetInitials("id-0", " abcd "))
	p, _ := s.Player("id-0")
	assert.Equal(t, "#000000", p.Color)
	assert.Equal(t, "ABC", p.Initials)
	assert.Equal(t, "ABC", p.Label())

	assert.ErrorIs(t, s.SetColor("missing", "#fff"), ErrUnknownPlayer)
	assert.ErrorIs(t, s.SetInitials("missing", "x"), ErrUnknownPlayer)
}

func TestPlayerLabelFallsBackToName(t *testing.T) {
	assert.Equal(t, "ALI", Player{Name: "Alice"}.Label())
	assert.Equal(t, "BO", Player{Name: "bo"}.Label())
}

func TestContrastColor(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"#FFFFFF", "black"},
		{"#000000", "white"},
		{"#E9C46A", "black"},
		{"#1D3557", "white"},
		{"nonsense", "white"},
		{"#GG0000", "white"},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			assert.Equal(t, tt.want, ContrastColor(tt.hex))
		})
	}
}
