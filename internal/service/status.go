package service

import (
	"context"

	"github.com/lox/squares/internal/squares"
)

// PlayerStatus is one player's allocation progress.
type PlayerStatus struct {
	Player  squares.Player
	Claimed int
	Quota   int
	Extra   bool
}

// Status summarises the board for display.
type Status struct {
	Players           []PlayerStatus
	BaseQuota         int
	Remainder         int
	Claimed           int
	Unclaimed         int
	BaseRoundComplete bool
	ExtrasAssigned    bool
	CanAssignExtras   bool
	Locked            bool
	CanRandomize      bool
	Orientation       squares.Orientation
	Winners           int
}

// Summarize derives the Status of a board.
func Summarize(st *squares.State) Status {
	sum := Status{
		Players:           make([]PlayerStatus, 0, len(st.Players)),
		BaseQuota:         st.BaseQuota(),
		Remainder:         st.Remainder(),
		Claimed:           st.TotalClaimed(),
		Unclaimed:         st.UnclaimedCount(),
		BaseRoundComplete: st.IsBaseRoundComplete(),
		ExtrasAssigned:    st.ExtraSquaresAssigned,
		CanAssignExtras:   st.CanAssignExtras(),
		Locked:            st.Locked,
		CanRandomize:      st.CanRandomize(),
		Orientation:       st.Orientation,
		Winners:           len(st.Winners),
	}
	extra := make(map[string]bool, len(st.ExtraPlayerIDs))
	for _, id := range st.ExtraPlayerIDs {
		extra[id] = true
	}
	for _, p := range st.Players {
		sum.Players = append(sum.Players, PlayerStatus{
			Player:  p,
			Claimed: st.ClaimedCount(p.ID),
			Quota:   st.QuotaFor(p.ID),
			Extra:   extra[p.ID],
		})
	}
	return sum
}

// Status loads the board and summarises it.
func (s *Service) Status(ctx context.Context) (Status, error) {
	st, err := s.State(ctx)
	if err != nil {
		return Status{}, err
	}
	return Summarize(st), nil
}
