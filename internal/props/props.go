// Package props holds the props-game document that shares a store with the
// squares board. Only its friend list is consumed here, to seed the squares
// player registry; the rest of the document is carried through backups as is.
package props

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultEventName labels a props document that was never customised.
const DefaultEventName = "Super Bowl LX Props"

// DefaultFriendNames seeds a fresh props document.
var DefaultFriendNames = []string{"Mike", "Edward", "Angie", "Sam", "Mark", "Dean"}

// ErrMalformed reports a props blob that cannot be decoded.
var ErrMalformed = errors.New("props: malformed state")

// Prop is one prediction question with two options.
type Prop struct {
	ID            string  `json:"id"`
	Question      string  `json:"question"`
	OptionA       string  `json:"optionA"`
	OptionB       string  `json:"optionB"`
	CorrectAnswer *string `json:"correctAnswer"`
	Order         int     `json:"order"`
}

// Friend is a participant of the props game, keyed by prop id to their pick.
type Friend struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Picks map[string]string `json:"picks"`
}

// State is the persisted props document.
type State struct {
	EventName   string   `json:"eventName"`
	Props       []Prop   `json:"props"`
	Friends     []Friend `json:"friends"`
	PropsLocked bool     `json:"propsLocked,omitempty"`
}

// Default returns the document a new installation starts from.
func Default() *State {
	s := &State{
		EventName: DefaultEventName,
		Props:     []Prop{},
		Friends:   make([]Friend, 0, len(DefaultFriendNames)),
	}
	for i, name := range DefaultFriendNames {
		s.Friends = append(s.Friends, Friend{
			ID:    fmt.Sprintf("f-default-%04d", i+1),
			Name:  name,
			Picks: map[string]string{},
		})
	}
	return s
}

// Decode parses a stored props blob.
func Decode(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if s.Props == nil {
		s.Props = []Prop{}
	}
	if s.Friends == nil {
		s.Friends = []Friend{}
	}
	return &s, nil
}

// FriendNames lists friend names in document order.
func (s *State) FriendNames() []string {
	names := make([]string, 0, len(s.Friends))
	for _, f := range s.Friends {
		names = append(names, f.Name)
	}
	return names
}
