package squares

import (
	"encoding/json"
	"fmt"
)

type squareJSON struct {
	Row     int     `json:"row"`
	Col     int     `json:"col"`
	OwnerID *string `json:"ownerId"`
}

// MarshalJSON writes an unclaimed square's owner as null.
func (sq Square) MarshalJSON() ([]byte, error) {
	out := squareJSON{Row: sq.Row, Col: sq.Col}
	if sq.OwnerID != "" {
		owner := sq.OwnerID
		out.OwnerID = &owner
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a square, mapping a null owner to "".
func (sq *Square) UnmarshalJSON(data []byte) error {
	var in squareJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	sq.Row, sq.Col = in.Row, in.Col
	sq.OwnerID = ""
	if in.OwnerID != nil {
		sq.OwnerID = *in.OwnerID
	}
	return nil
}

// MarshalJSON writes empty collections as [] rather than null so the blob
// always matches the durable layout.
func (s State) MarshalJSON() ([]byte, error) {
	type plain State
	out := plain(s)
	if out.Players == nil {
		out.Players = []Player{}
	}
	if out.Winners == nil {
		out.Winners = []WinnerRecord{}
	}
	if out.ExtraPlayerIDs == nil {
		out.ExtraPlayerIDs = []string{}
	}
	if out.Orientation == "" {
		out.Orientation = OrientationACols
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a persisted board and rejects blobs whose shape
// cannot describe one: anything but exactly 100 distinct in-range squares, an
// unknown orientation, digit arrays that are not permutations of 0-9 (or only
// one of them set), or winners with unknown checkpoints.
func (s *State) UnmarshalJSON(data []byte) error {
	type plain State
	var in plain
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	st := State(in)
	if st.Orientation == "" {
		st.Orientation = OrientationACols
	}
	if st.Players == nil {
		st.Players = []Player{}
	}
	if st.Winners == nil {
		st.Winners = []WinnerRecord{}
	}
	if st.ExtraPlayerIDs == nil {
		st.ExtraPlayerIDs = []string{}
	}
	if err := st.checkShape(); err != nil {
		return err
	}
	*s = st
	return nil
}

func (s *State) checkShape() error {
	if len(s.Board) != TotalCells {
		return fmt.Errorf("%w: board has %d squares, want %d", ErrMalformedState, len(s.Board), TotalCells)
	}
	var seen [GridSize][GridSize]bool
	for _, sq := range s.Board {
		if !sq.Cell().Valid() {
			return fmt.Errorf("%w: square %s out of range", ErrMalformedState, sq.Cell())
		}
		if seen[sq.Row][sq.Col] {
			return fmt.Errorf("%w: duplicate square %s", ErrMalformedState, sq.Cell())
		}
		seen[sq.Row][sq.Col] = true
	}
	if !s.Orientation.Valid() {
		return fmt.Errorf("%w: unknown orientation %q", ErrMalformedState, s.Orientation)
	}
	if (s.RowNumbers == nil) != (s.ColNumbers == nil) {
		return fmt.Errorf("%w: row and column numbers must be assigned together", ErrMalformedState)
	}
	if s.RowNumbers != nil {
		if !isDigitPermutation(s.RowNumbers) {
			return fmt.Errorf("%w: rowNumbers %v is not a permutation of 0-9", ErrMalformedState, s.RowNumbers)
		}
		if !isDigitPermutation(s.ColNumbers) {
			return fmt.Errorf("%w: colNumbers %v is not a permutation of 0-9", ErrMalformedState, s.ColNumbers)
		}
	}
	for _, w := range s.Winners {
		if !w.Checkpoint.Valid() {
			return fmt.Errorf("%w: winner with checkpoint %q", ErrMalformedState, w.Checkpoint)
		}
	}
	return nil
}

func isDigitPermutation(xs []int) bool {
	if len(xs) != GridSize {
		return false
	}
	var seen [GridSize]bool
	for _, x := range xs {
		if x < 0 || x >= GridSize || seen[x] {
			return false
		}
		seen[x] = true
	}
	return true
}
