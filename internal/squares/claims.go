package squares

// Claim gives an unowned square to a player with quota to spare.
func (s *State) Claim(playerID string, c Cell) error {
	if s.Locked {
		return ErrBoardLocked
	}
	sq, ok := s.Square(c)
	if !ok {
		return ErrInvalidCell
	}
	if _, ok := s.Player(playerID); !ok {
		return ErrUnknownPlayer
	}
	if sq.Claimed() {
		return ErrSquareTaken
	}
	if s.ClaimedCount(playerID) >= s.QuotaFor(playerID) {
		return ErrQuotaReached
	}
	sq.OwnerID = playerID
	return nil
}

// Unclaim releases a square, but only for its owner and only while unlocked.
func (s *State) Unclaim(playerID string, c Cell) error {
	if s.Locked {
		return ErrBoardLocked
	}
	sq, ok := s.Square(c)
	if !ok {
		return ErrInvalidCell
	}
	if playerID == "" || sq.OwnerID != playerID {
		return ErrNotOwner
	}
	sq.OwnerID = ""
	return nil
}

// ClearSquares releases the given cells whoever owns them, locked or not.
// All cells are checked before any is cleared; it returns how many were owned.
func (s *State) ClearSquares(cells ...Cell) (int, error) {
	for _, c := range cells {
		if !c.Valid() {
			return 0, ErrInvalidCell
		}
	}
	cleared := 0
	for _, c := range cells {
		sq, _ := s.Square(c)
		if sq.Claimed() {
			sq.OwnerID = ""
			cleared++
		}
	}
	return cleared, nil
}
