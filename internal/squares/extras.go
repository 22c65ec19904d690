package squares

import (
	"fmt"

	"github.com/lox/squares/internal/randutil"
)

// AssignExtras picks Remainder(n) distinct players uniformly at random to
// receive one square beyond the base quota. It runs once, after every player
// has reached the base quota and while unclaimed squares remain.
func (s *State) AssignExtras(rng randutil.Source) ([]string, error) {
	switch {
	case len(s.Players) == 0:
		return nil, ErrNoPlayers
	case s.ExtraSquaresAssigned:
		return nil, ErrExtrasAssigned
	case !s.IsBaseRoundComplete():
		return nil, ErrBaseRoundIncomplete
	case s.UnclaimedCount() == 0:
		return nil, ErrBoardFull
	}

	picked := randutil.Sample(rng, len(s.Players), s.Remainder())
	selected := make([]string, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, s.Players[i].ID)
	}
	s.ExtraPlayerIDs = selected
	s.ExtraSquaresAssigned = true
	return append([]string{}, selected...), nil
}

// PlaceForPlayer is the administrative placement of an extra player's bonus
// square on a specific cell.
func (s *State) PlaceForPlayer(playerID string, c Cell) error {
	sq, ok := s.Square(c)
	if !ok {
		return ErrInvalidCell
	}
	if sq.Claimed() {
		return ErrSquareTaken
	}
	if _, ok := s.Player(playerID); !ok {
		return ErrUnknownPlayer
	}
	if !s.isExtra(playerID) {
		return ErrNotExtraPlayer
	}
	if s.ClaimedCount(playerID) >= s.BaseQuota()+1 {
		return ErrQuotaReached
	}
	sq.OwnerID = playerID
	return nil
}

// AutoFillPlayer tops a player up to their quota with squares drawn uniformly
// from all unclaimed squares. It returns the cells placed, which may be fewer
// than the shortfall when the board runs out.
func (s *State) AutoFillPlayer(playerID string, rng randutil.Source) ([]Cell, error) {
	if s.Locked {
		return nil, ErrBoardLocked
	}
	if _, ok := s.Player(playerID); !ok {
		return nil, ErrUnknownPlayer
	}
	limit := s.QuotaFor(playerID)
	claimed := s.ClaimedCount(playerID)
	if claimed >= limit {
		return nil, ErrQuotaReached
	}

	free := s.unclaimedIndexes()
	randutil.Shuffle(rng, len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	var placed []Cell
	for _, i := range free {
		if claimed >= limit {
			break
		}
		s.Board[i].OwnerID = playerID
		placed = append(placed, s.Board[i].Cell())
		claimed++
	}
	return placed, nil
}

// RandomizeRemaining re-selects the extra-player set and, in a single shuffle
// of the unclaimed squares, fills each selected player up to their quota in
// selection order.
//
// Players already holding more than the base quota keep their extra status;
// only the remaining slots are drawn at random from everyone else. It returns
// the new extra-player ids.
func (s *State) RandomizeRemaining(rng randutil.Source) ([]string, error) {
	if s.Locked {
		return nil, ErrBoardLocked
	}
	if len(s.Players) == 0 {
		return nil, ErrNoPlayers
	}

	base := s.BaseQuota()
	remainder := s.Remainder()
	var keep []string
	var pool []string
	for _, p := range s.Players {
		if s.ClaimedCount(p.ID) > base {
			keep = append(keep, p.ID)
		} else {
			pool = append(pool, p.ID)
		}
	}
	if len(keep) > remainder {
		return nil, fmt.Errorf("%w: %d players hold an extra square but the remainder is %d",
			ErrMalformedState, len(keep), remainder)
	}

	selected := append([]string{}, keep...)
	for _, i := range randutil.Sample(rng, len(pool), remainder-len(keep)) {
		selected = append(selected, pool[i])
	}
	s.ExtraPlayerIDs = selected
	s.ExtraSquaresAssigned = true

	free := s.unclaimedIndexes()
	randutil.Shuffle(rng, len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	next := 0
	for _, id := range selected {
		limit := s.QuotaFor(id)
		claimed := s.ClaimedCount(id)
		for claimed < limit && next < len(free) {
			s.Board[free[next]].OwnerID = id
			claimed++
			next++
		}
	}
	return append([]string{}, selected...), nil
}
