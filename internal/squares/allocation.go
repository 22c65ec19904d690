package squares

// BaseQuota is the number of squares every one of n players may claim.
func BaseQuota(n int) int {
	if n <= 0 {
		return 0
	}
	return TotalCells / n
}

// Remainder is the number of squares left over after every player receives
// the base quota. It is always in [0, n).
func Remainder(n int) int {
	if n <= 0 {
		return 0
	}
	return TotalCells - BaseQuota(n)*n
}

// BaseQuota is the base quota for the current player count.
func (s *State) BaseQuota() int {
	return BaseQuota(len(s.Players))
}

// Remainder is the remainder for the current player count.
func (s *State) Remainder() int {
	return Remainder(len(s.Players))
}

// QuotaFor returns the maximum number of squares a player may hold: the base
// quota, plus one for players selected to receive an extra square.
func (s *State) QuotaFor(playerID string) int {
	base := s.BaseQuota()
	if s.isExtra(playerID) {
		return base + 1
	}
	return base
}

// ClaimedCount returns how many squares the player owns.
func (s *State) ClaimedCount(playerID string) int {
	if playerID == "" {
		return 0
	}
	return s.countOwned(playerID)
}

// UnclaimedCount returns how many squares have no owner.
func (s *State) UnclaimedCount() int {
	return s.countOwned("")
}

// TotalClaimed returns how many squares have an owner.
func (s *State) TotalClaimed() int {
	return TotalCells - s.UnclaimedCount()
}

func (s *State) countOwned(id string) int {
	n := 0
	for _, sq := range s.Board {
		if sq.OwnerID == id {
			n++
		}
	}
	return n
}

// CanClaim reports whether the player could claim another square right now.
func (s *State) CanClaim(playerID string) bool {
	if s.Locked {
		return false
	}
	return s.ClaimedCount(playerID) < s.QuotaFor(playerID)
}

// IsBaseRoundComplete reports whether every player holds at least the base quota.
func (s *State) IsBaseRoundComplete() bool {
	base := s.BaseQuota()
	for _, p := range s.Players {
		if s.ClaimedCount(p.ID) < base {
			return false
		}
	}
	return true
}

// CanAssignExtras reports whether AssignExtras would succeed.
func (s *State) CanAssignExtras() bool {
	return len(s.Players) > 0 &&
		!s.ExtraSquaresAssigned &&
		s.IsBaseRoundComplete() &&
		s.UnclaimedCount() > 0
}

// CanRandomize reports whether RandomizeNumbers would succeed.
func (s *State) CanRandomize() bool {
	return s.Locked && s.TotalClaimed() == TotalCells
}

// ClaimedCells returns the cells a player owns in board order.
func (s *State) ClaimedCells(playerID string) []Cell {
	var cells []Cell
	for _, sq := range s.Board {
		if sq.OwnerID == playerID {
			cells = append(cells, sq.Cell())
		}
	}
	return cells
}

func (s *State) unclaimedIndexes() []int {
	idx := make([]int, 0, TotalCells)
	for i, sq := range s.Board {
		if sq.OwnerID == "" {
			idx = append(idx, i)
		}
	}
	return idx
}
