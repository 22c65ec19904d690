package service

import (
	"context"
	"fmt"

	"github.com/lox/squares/internal/randutil"
	"github.com/lox/squares/internal/squares"
)

// ResolvePlayer finds a player by id, falling back to an exact name match.
func ResolvePlayer(st *squares.State, ref string) (*squares.Player, error) {
	if p, ok := st.Player(ref); ok {
		return p, nil
	}
	if p, ok := st.PlayerByName(ref); ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", squares.ErrUnknownPlayer, ref)
}

// AddPlayer registers a player under a fresh id.
func (s *Service) AddPlayer(ctx context.Context, name string) (squares.Player, error) {
	var added squares.Player
	_, err := s.update(ctx, "add player", func(st *squares.State, rng randutil.Source) error {
		p, err := st.AddPlayer(name, s.newID(), rng)
		if err != nil {
			return fmt.Errorf("add player %q: %w", name, err)
		}
		added = p
		return nil
	})
	if err != nil {
		return squares.Player{}, err
	}
	s.logger.Info("Player added", "name", added.Name, "id", added.ID, "color", added.Color)
	return added, nil
}

// RenamePlayer changes the display name of the player ref names.
func (s *Service) RenamePlayer(ctx context.Context, ref, name string) error {
	_, err := s.update(ctx, "rename player", func(st *squares.State, _ randutil.Source) error {
		p, err := ResolvePlayer(st, ref)
		if err != nil {
			return err
		}
		if err := st.RenamePlayer(p.ID, name); err != nil {
			return fmt.Errorf("rename %q: %w", ref, err)
		}
		return nil
	})
	return err
}

// RemovePlayer deletes a player and returns how many squares were released.
func (s *Service) RemovePlayer(ctx context.Context, ref string) (int, error) {
	var (
		released int
		name     string
	)
	_, err := s.update(ctx, "remove player", func(st *squares.State, _ randutil.Source) error {
		p, err := ResolvePlayer(st, ref)
		if err != nil {
			return err
		}
		name = p.Name
		released, err = st.RemovePlayer(p.ID)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Player removed", "name", name, "released", released)
	return released, nil
}

// SetColor sets a player's display color.
func (s *Service) SetColor(ctx context.Context, ref, color string) error {
	_, err := s.update(ctx, "set color", func(st *squares.State, _ randutil.Source) error {
		p, err := ResolvePlayer(st, ref)
		if err != nil {
			return err
		}
		return st.SetColor(p.ID, color)
	})
	return err
}

// SetInitials sets a player's square label.
func (s *Service) SetInitials(ctx context.Context, ref, initials string) error {
	_, err := s.update(ctx, "set initials", func(st *squares.State, _ randutil.Source) error {
		p, err := ResolvePlayer(st, ref)
		if err != nil {
			return err
		}
		return st.SetInitials(p.ID, initials)
	})
	return err
}

// InitPlayersFromProps seeds an empty registry with the props friends, in
// order. It does nothing when players already exist.
func (s *Service) InitPlayersFromProps(ctx context.Context) ([]squares.Player, error) {
	p, err := s.Props(ctx)
	if err != nil {
		return nil, err
	}

	var added []squares.Player
	st, err := s.update(ctx, "init players", func(st *squares.State, rng randutil.Source) error {
		if len(st.Players) > 0 {
			return nil
		}
		for _, name := range p.FriendNames() {
			player, err := st.AddPlayer(name, s.newID(), rng)
			if err != nil {
				return fmt.Errorf("add friend %q: %w", name, err)
			}
			added = append(added, player)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(added) == 0 {
		s.logger.Debug("Players already registered, skipping props import", "players", len(st.Players))
		return nil, nil
	}
	s.logger.Info("Players imported from props", "count", len(added))
	return added, nil
}
