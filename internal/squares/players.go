package squares

import (
	"strings"
	"unicode/utf8"

	"github.com/lox/squares/internal/randutil"
)

// MaxInitialsLength bounds the short label shown in a claimed square.
const MaxInitialsLength = 3

// AddPlayer registers a new player under id with the next free palette color.
//
// The name is trimmed and must be non-empty and unique. Because a new player
// lowers the base quota, the player is refused when that would leave someone
// holding more squares than their new quota.
func (s *State) AddPlayer(name, id string, rng randutil.Source) (Player, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Player{}, ErrEmptyName
	}
	if _, taken := s.PlayerByName(trimmed); taken {
		return Player{}, ErrDuplicateName
	}

	newBase := BaseQuota(len(s.Players) + 1)
	for _, p := range s.Players {
		quota := newBase
		if s.isExtra(p.ID) {
			quota++
		}
		if s.ClaimedCount(p.ID) > quota {
			return Player{}, ErrOverQuota
		}
	}

	p := Player{
		ID:    id,
		Name:  trimmed,
		Color: NextColor(s.Players, rng),
	}
	s.Players = append(s.Players, p)
	return p, nil
}

// RenamePlayer changes a player's display name.
func (s *State) RenamePlayer(id, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyName
	}
	if other, taken := s.PlayerByName(trimmed); taken && other.ID != id {
		return ErrDuplicateName
	}
	p, ok := s.Player(id)
	if !ok {
		return ErrUnknownPlayer
	}
	p.Name = trimmed
	return nil
}

// RemovePlayer deletes a player, releases every square they owned and drops
// them from the extra-square list. Extras are not re-assigned.
func (s *State) RemovePlayer(id string) (released int, err error) {
	if _, ok := s.Player(id); !ok {
		return 0, ErrUnknownPlayer
	}
	players := s.Players[:0]
	for _, p := range s.Players {
		if p.ID != id {
			players = append(players, p)
		}
	}
	s.Players = players

	for i := range s.Board {
		if s.Board[i].OwnerID == id {
			s.Board[i].OwnerID = ""
			released++
		}
	}

	extras := s.ExtraPlayerIDs[:0]
	for _, e := range s.ExtraPlayerIDs {
		if e != id {
			extras = append(extras, e)
		}
	}
	s.ExtraPlayerIDs = extras
	return released, nil
}

// SetColor sets a player's display color.
func (s *State) SetColor(id, color string) error {
	p, ok := s.Player(id)
	if !ok {
		return ErrUnknownPlayer
	}
	p.Color = color
	return nil
}

// SetInitials sets a player's short label, upper-cased and cut to three runes.
func (s *State) SetInitials(id, initials string) error {
	p, ok := s.Player(id)
	if !ok {
		return ErrUnknownPlayer
	}
	label := strings.ToUpper(strings.TrimSpace(initials))
	if utf8.RuneCountInString(label) > MaxInitialsLength {
		label = string([]rune(label)[:MaxInitialsLength])
	}
	p.Initials = label
	return nil
}

// Label returns the player's initials, or the first runes of their name.
func (p Player) Label() string {
	if p.Initials != "" {
		return p.Initials
	}
	r := []rune(strings.ToUpper(p.Name))
	if len(r) > MaxInitialsLength {
		r = r[:MaxInitialsLength]
	}
	return string(r)
}
