// Package backup reads and writes the combined props and squares document.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lox/squares/internal/props"
	"github.com/lox/squares/internal/squares"
)

var (
	ErrMalformed = errors.New("backup: malformed document")
	ErrEmpty     = errors.New("backup: document has neither props nor squares")
)

// Backup is the export envelope. Either half may be absent on import.
type Backup struct {
	Props   *props.State   `json:"props,omitempty"`
	Squares *squares.State `json:"squares,omitempty"`
}

// Encode writes the envelope as indented JSON.
func Encode(b Backup) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return data, nil
}

// Decode parses an envelope. A present squares half must pass the full
// invariant check; any failure rejects the whole document.
func Decode(data []byte) (Backup, error) {
	var raw struct {
		Props   json.RawMessage `json:"props"`
		Squares json.RawMessage `json:"squares"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Backup{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var b Backup
	if present(raw.Props) {
		p, err := props.Decode(raw.Props)
		if err != nil {
			return Backup{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		b.Props = p
	}
	if present(raw.Squares) {
		var s squares.State
		if err := json.Unmarshal(raw.Squares, &s); err != nil {
			return Backup{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		if err := s.Validate(); err != nil {
			return Backup{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		b.Squares = &s
	}
	if b.Props == nil && b.Squares == nil {
		return Backup{}, ErrEmpty
	}
	return b, nil
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
