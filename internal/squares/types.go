package squares

import (
	"fmt"
	"time"
)

// Grid geometry.
const (
	GridSize   = 10
	TotalCells = GridSize * GridSize
)

// Checkpoint names a scoring moment.
type Checkpoint string

const (
	Q1    Checkpoint = "Q1"
	Q2    Checkpoint = "Q2"
	Q3    Checkpoint = "Q3"
	Final Checkpoint = "Final"
)

// Checkpoints lists every valid checkpoint in game order.
var Checkpoints = []Checkpoint{Q1, Q2, Q3, Final}

// Valid reports whether c is one of the four fixed checkpoints.
func (c Checkpoint) Valid() bool {
	switch c {
	case Q1, Q2, Q3, Final:
		return true
	}
	return false
}

// ParseCheckpoint accepts the checkpoint name exactly as stored.
func ParseCheckpoint(s string) (Checkpoint, error) {
	c := Checkpoint(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCheckpoint, s)
	}
	return c, nil
}

// Orientation selects which team's digits label the columns. It only affects
// presentation; winner lookup always maps team A to rows and team B to columns.
type Orientation string

const (
	OrientationACols Orientation = "A-cols"
	OrientationARows Orientation = "A-rows"
)

// Valid reports whether o is a known orientation.
func (o Orientation) Valid() bool {
	return o == OrientationACols || o == OrientationARows
}

// Cell addresses one square.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Valid reports whether the cell lies on the grid.
func (c Cell) Valid() bool {
	return c.Row >= 0 && c.Row < GridSize && c.Col >= 0 && c.Col < GridSize
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Player is a participant in the pool.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Initials string `json:"initials,omitempty"`
}

// Square is one cell of the grid. OwnerID is empty when unclaimed and is
// persisted as null.
type Square struct {
	Row     int
	Col     int
	OwnerID string
}

// Cell returns the square's coordinates.
func (sq Square) Cell() Cell {
	return Cell{Row: sq.Row, Col: sq.Col}
}

// Claimed reports whether the square has an owner.
func (sq Square) Claimed() bool {
	return sq.OwnerID != ""
}

// WinnerRecord is an immutable ledger entry for one checkpoint.
type WinnerRecord struct {
	Checkpoint        Checkpoint `json:"checkpoint"`
	ScoreA            int        `json:"scoreA"`
	ScoreB            int        `json:"scoreB"`
	DigitA            int        `json:"digitA"`
	DigitB            int        `json:"digitB"`
	WinningPlayerID   *string    `json:"winningPlayerId"`
	WinningPlayerName *string    `json:"winningPlayerName"`
	Timestamp         time.Time  `json:"timestamp"`
	PayoutAmount      *float64   `json:"payoutAmount"`
}

// WinnerResult is the outcome of resolving a score pair against the board.
type WinnerResult struct {
	Checkpoint Checkpoint `json:"checkpoint"`
	ScoreA     int        `json:"scoreA"`
	ScoreB     int        `json:"scoreB"`
	DigitA     int        `json:"digitA"`
	DigitB     int        `json:"digitB"`
	Row        int        `json:"row"`
	Col        int        `json:"col"`
	PlayerID   string     `json:"playerId,omitempty"`
	PlayerName string     `json:"playerName,omitempty"`
	Unclaimed  bool       `json:"unclaimed"`
}

// State is the whole persisted board.
type State struct {
	Players              []Player       `json:"players"`
	Board                []Square       `json:"board"`
	Locked               bool           `json:"locked"`
	Orientation          Orientation    `json:"orientation"`
	ColNumbers           []int          `json:"colNumbers"`
	RowNumbers           []int          `json:"rowNumbers"`
	Winners              []WinnerRecord `json:"winners"`
	ExtraSquaresAssigned bool           `json:"extraSquaresAssigned"`
	ExtraPlayerIDs       []string       `json:"extraPlayerIds"`
}

// NewState returns an empty, unlocked board with all squares unowned.
func NewState() *State {
	board := make([]Square, 0, TotalCells)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			board = append(board, Square{Row: row, Col: col})
		}
	}
	return &State{
		Players:        []Player{},
		Board:          board,
		Orientation:    OrientationACols,
		Winners:        []WinnerRecord{},
		ExtraPlayerIDs: []string{},
	}
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	out := *s
	out.Players = append([]Player{}, s.Players...)
	out.Board = append([]Square{}, s.Board...)
	if s.ColNumbers != nil {
		out.ColNumbers = append([]int{}, s.ColNumbers...)
	}
	if s.RowNumbers != nil {
		out.RowNumbers = append([]int{}, s.RowNumbers...)
	}
	out.Winners = append([]WinnerRecord{}, s.Winners...)
	out.ExtraPlayerIDs = append([]string{}, s.ExtraPlayerIDs...)
	return &out
}

// Player returns the player with the given id.
func (s *State) Player(id string) (*Player, bool) {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i], true
		}
	}
	return nil, false
}

// PlayerByName returns the player with exactly the given name.
func (s *State) PlayerByName(name string) (*Player, bool) {
	for i := range s.Players {
		if s.Players[i].Name == name {
			return &s.Players[i], true
		}
	}
	return nil, false
}

// Square returns the square at cell.
func (s *State) Square(c Cell) (*Square, bool) {
	if !c.Valid() {
		return nil, false
	}
	for i := range s.Board {
		if s.Board[i].Row == c.Row && s.Board[i].Col == c.Col {
			return &s.Board[i], true
		}
	}
	return nil, false
}

// DigitsAssigned reports whether both digit permutations are set.
func (s *State) DigitsAssigned() bool {
	return s.RowNumbers != nil && s.ColNumbers != nil
}

// Winner returns the recorded winner for a checkpoint.
func (s *State) Winner(c Checkpoint) (WinnerRecord, bool) {
	for _, w := range s.Winners {
		if w.Checkpoint == c {
			return w, true
		}
	}
	return WinnerRecord{}, false
}

func (s *State) isExtra(id string) bool {
	for _, e := range s.ExtraPlayerIDs {
		if e == id {
			return true
		}
	}
	return false
}
