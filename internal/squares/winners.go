package squares

import (
	"slices"
	"time"
)

// ComputeWinner resolves a score pair to a square without changing the state.
//
// Team A's last digit indexes RowNumbers and team B's indexes ColNumbers,
// whatever the orientation.
func (s *State) ComputeWinner(c Checkpoint, scoreA, scoreB int) (WinnerResult, error) {
	if !c.Valid() {
		return WinnerResult{}, ErrInvalidCheckpoint
	}
	if scoreA < 0 || scoreB < 0 {
		return WinnerResult{}, ErrInvalidScore
	}
	if !s.DigitsAssigned() {
		return WinnerResult{}, ErrDigitsUnassigned
	}

	digitA := scoreA % 10
	digitB := scoreB % 10
	cell := Cell{
		Row: slices.Index(s.RowNumbers, digitA),
		Col: slices.Index(s.ColNumbers, digitB),
	}
	sq, ok := s.Square(cell)
	if !ok {
		return WinnerResult{}, ErrMalformedState
	}

	res := WinnerResult{
		Checkpoint: c,
		ScoreA:     scoreA,
		ScoreB:     scoreB,
		DigitA:     digitA,
		DigitB:     digitB,
		Row:        cell.Row,
		Col:        cell.Col,
		PlayerID:   sq.OwnerID,
		Unclaimed:  !sq.Claimed(),
	}
	if p, ok := s.Player(sq.OwnerID); ok {
		res.PlayerName = p.Name
	}
	return res, nil
}

// RecordWinner resolves the winner and appends it to the ledger. Each
// checkpoint can be recorded once; ClearWinner reopens it.
func (s *State) RecordWinner(c Checkpoint, scoreA, scoreB int, at time.Time, payout *float64) (WinnerRecord, error) {
	res, err := s.ComputeWinner(c, scoreA, scoreB)
	if err != nil {
		return WinnerRecord{}, err
	}
	if res.Unclaimed {
		return WinnerRecord{}, ErrSquareUnclaimed
	}
	if _, exists := s.Winner(c); exists {
		return WinnerRecord{}, ErrCheckpointRecorded
	}

	id, name := res.PlayerID, res.PlayerName
	rec := WinnerRecord{
		Checkpoint:        c,
		ScoreA:            scoreA,
		ScoreB:            scoreB,
		DigitA:            res.DigitA,
		DigitB:            res.DigitB,
		WinningPlayerID:   &id,
		WinningPlayerName: &name,
		Timestamp:         at.UTC(),
		PayoutAmount:      payout,
	}
	s.Winners = append(s.Winners, rec)
	return rec, nil
}

// ClearWinner removes the recorded winner for a checkpoint.
func (s *State) ClearWinner(c Checkpoint) error {
	if !c.Valid() {
		return ErrInvalidCheckpoint
	}
	if _, exists := s.Winner(c); !exists {
		return ErrNoWinner
	}
	kept := make([]WinnerRecord, 0, len(s.Winners))
	for _, w := range s.Winners {
		if w.Checkpoint != c {
			kept = append(kept, w)
		}
	}
	s.Winners = kept
	return nil
}
