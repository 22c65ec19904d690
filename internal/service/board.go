package service

import (
	"context"
	"fmt"

	"github.com/lox/squares/internal/randutil"
	"github.com/lox/squares/internal/squares"
)

// Claim gives a square to the player ref names.
func (s *Service) Claim(ctx context.Context, ref string, c squares.Cell) error {
	_, err := s.update(ctx, "claim", func(st *squares.State, _ randutil.Source) error {
		p, err := ResolvePlayer(st, ref)
		if err != nil {
			return err
		}
		if err := st.Claim(p.ID, c); err != nil {
			return fmt.Errorf("claim %s for %s: %w", c, p.Name, err)
		}
		return nil
	})
	return err
}

// Unclaim releases a square held by the player ref names.
func (s *Service) Unclaim(ctx context.Context, ref string, c squares.Cell) error {
	_, err := s.update(ctx, "unclaim", func(st *squares.State, _ randutil.Source) error {
		p, err := ResolvePlayer(st, ref)
		if err != nil {
			return err
		}
		if err := st.Unclaim(p.ID, c); err != nil {
			return fmt.Errorf("unclaim %s for %s: %w", c, p.Name, err)
		}
		return nil
	})
	return err
}

// ClearSquares releases the given squares regardless of owner or lock.
func (s *Service) ClearSquares(ctx context.Context, cells ...squares.Cell) (int, error) {
	var cleared int
	_, err := s.update(ctx, "clear squares", func(st *squares.State, _ randutil.Source) error {
		var err error
		cleared, err = st.ClearSquares(cells...)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Squares cleared", "requested", len(cells), "cleared", cleared)
	return cleared, nil
}

// AutoFill tops the player up to their quota with random free squares.
func (s *Service) AutoFill(ctx context.Context, ref string) ([]squares.Cell, error) {
	var placed []squares.Cell
	_, err := s.update(ctx, "autofill", func(st *squares.State, rng randutil.Source) error {
		p, err := ResolvePlayer(st, ref)
		if err != nil {
			return err
		}
		placed, err = st.AutoFillPlayer(p.ID, rng)
		if err != nil {
			return fmt.Errorf("autofill %s: %w", p.Name, err)
		}
		return nil
	})
	return placed, err
}

// AssignExtras picks the players who get one square beyond the base quota.
func (s *Service) AssignExtras(ctx context.Context) ([]squares.Player, error) {
	var selected []squares.Player
	_, err := s.update(ctx, "assign extras", func(st *squares.State, rng randutil.Source) error {
		ids, err := st.AssignExtras(rng)
		if err != nil {
			return fmt.Errorf("assign extras: %w", err)
		}
		selected = playersByID(st, ids)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Extra squares assigned", "players", playerNames(selected))
	return selected, nil
}

// PlaceExtra puts an extra player's bonus square on a chosen cell.
func (s *Service) PlaceExtra(ctx context.Context, ref string, c squares.Cell) error {
	_, err := s.update(ctx, "place extra", func(st *squares.State, _ randutil.Source) error {
		p, err := ResolvePlayer(st, ref)
		if err != nil {
			return err
		}
		if err := st.PlaceForPlayer(p.ID, c); err != nil {
			return fmt.Errorf("place %s for %s: %w", c, p.Name, err)
		}
		return nil
	})
	return err
}

// RandomizeRemaining re-selects the extra players and fills the rest of the
// board for them.
func (s *Service) RandomizeRemaining(ctx context.Context) ([]squares.Player, error) {
	var selected []squares.Player
	st, err := s.update(ctx, "randomize remaining", func(st *squares.State, rng randutil.Source) error {
		ids, err := st.RandomizeRemaining(rng)
		if err != nil {
			return fmt.Errorf("randomize remaining: %w", err)
		}
		selected = playersByID(st, ids)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Remaining squares randomized", "players", playerNames(selected), "unclaimed", st.UnclaimedCount())
	return selected, nil
}

// Lock freezes the board, assigning digits on first lock.
func (s *Service) Lock(ctx context.Context) (*squares.State, error) {
	st, err := s.update(ctx, "lock", func(st *squares.State, rng randutil.Source) error {
		return st.Lock(rng)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Board locked", "rows", st.RowNumbers, "cols", st.ColNumbers)
	return st, nil
}

// Unlock reopens the board for claims.
func (s *Service) Unlock(ctx context.Context) error {
	_, err := s.update(ctx, "unlock", func(st *squares.State, _ randutil.Source) error {
		return st.Unlock()
	})
	if err != nil {
		return err
	}
	s.logger.Info("Board unlocked")
	return nil
}

// RandomizeNumbers re-rolls the digits of a locked, full board.
func (s *Service) RandomizeNumbers(ctx context.Context) (*squares.State, error) {
	st, err := s.update(ctx, "randomize numbers", func(st *squares.State, rng randutil.Source) error {
		return st.RandomizeNumbers(rng)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Digits re-rolled", "rows", st.RowNumbers, "cols", st.ColNumbers)
	return st, nil
}

// FlipOrientation swaps which team labels the columns.
func (s *Service) FlipOrientation(ctx context.Context) (squares.Orientation, error) {
	var o squares.Orientation
	_, err := s.update(ctx, "flip orientation", func(st *squares.State, _ randutil.Source) error {
		o = st.FlipOrientation()
		return nil
	})
	return o, err
}

func playersByID(st *squares.State, ids []string) []squares.Player {
	out := make([]squares.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := st.Player(id); ok {
			out = append(out, *p)
		}
	}
	return out
}

func playerNames(players []squares.Player) []string {
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}
	return names
}
