package squares

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/squares/internal/randutil"
)

// scriptedSource replays values reduced into range, then returns 0.
type scriptedSource struct {
	values []int
	index  int
}

func newScripted(values ...int) *scriptedSource {
	return &scriptedSource{values: values}
}

func (s *scriptedSource) IntN(n int) int {
	if s.index >= len(s.values) {
		return 0
	}
	v := s.values[s.index] % n
	s.index++
	return v
}

// newTestState registers players named after their index ("p0", "p1", ...).
func newTestState(t *testing.T, n int) *State {
	t.Helper()
	s := NewState()
	rng := randutil.New(1)
	for i := 0; i < n; i++ {
		_, err := s.AddPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("id-%d", i), rng)
		require.NoError(t, err)
	}
	return s
}

// fillBase claims squares in board order until every player holds the base quota.
func fillBase(t *testing.T, s *State) {
	t.Helper()
	base := s.BaseQuota()
	next := 0
	for _, p := range s.Players {
		for s.ClaimedCount(p.ID) < base {
			for s.Board[next].Claimed() {
				next++
			}
			require.NoError(t, s.Claim(p.ID, s.Board[next].Cell()))
		}
	}
}

// fillAll claims every remaining square for whichever player still has quota.
func fillAll(t *testing.T, s *State) {
	t.Helper()
	for _, sq := range s.Board {
		if sq.Claimed() {
			continue
		}
		for _, p := range s.Players {
			if s.CanClaim(p.ID) {
				require.NoError(t, s.Claim(p.ID, sq.Cell()))
				break
			}
		}
	}
}
