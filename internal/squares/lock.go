package squares

import "github.com/lox/squares/internal/randutil"

// Lock freezes claims. The first lock also assigns the row and column digits
// as two independent random permutations; relocking after an unlock keeps the
// digits already assigned.
func (s *State) Lock(rng randutil.Source) error {
	if s.Locked {
		return ErrAlreadyLocked
	}
	s.Locked = true
	if !s.DigitsAssigned() {
		s.assignDigits(rng)
	}
	return nil
}

// Unlock reopens claims. Digits are left untouched.
func (s *State) Unlock() error {
	if !s.Locked {
		return ErrNotLocked
	}
	s.Locked = false
	return nil
}

// RandomizeNumbers re-rolls both digit permutations. It is only allowed on a
// locked, fully claimed board, and clears the winner ledger because recorded
// winners were resolved against the old digits.
func (s *State) RandomizeNumbers(rng randutil.Source) error {
	if !s.CanRandomize() {
		return ErrCannotRandomize
	}
	s.assignDigits(rng)
	s.Winners = []WinnerRecord{}
	return nil
}

// FlipOrientation swaps which team's digits label the columns. Recorded
// winners are not reinterpreted.
func (s *State) FlipOrientation() Orientation {
	if s.Orientation == OrientationARows {
		s.Orientation = OrientationACols
	} else {
		s.Orientation = OrientationARows
	}
	return s.Orientation
}

func (s *State) assignDigits(rng randutil.Source) {
	s.ColNumbers = randutil.Perm(rng, GridSize)
	s.RowNumbers = randutil.Perm(rng, GridSize)
}
