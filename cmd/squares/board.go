package main

import (
	"context"
	"errors"

	"github.com/lox/squares/internal/squares"
)

type ClaimCmd struct {
	Player string   `arg:"" help:"Player name or id"`
	Cells  []string `arg:"" help:"Squares as row,col"`
}

func (cmd *ClaimCmd) Run(ctx context.Context, g *Globals) error {
	cells, err := parseCells(cmd.Cells)
	if err != nil {
		return err
	}
	return g.withSession(func(s *session) error {
		for _, c := range cells {
			if err := s.svc.Claim(ctx, cmd.Player, c); err != nil {
				return err
			}
		}
		s.printf("%s claimed %s\n", cmd.Player, formatCells(cells))
		return nil
	})
}

type UnclaimCmd struct {
	Player string   `arg:"" help:"Player name or id"`
	Cells  []string `arg:"" help:"Squares as row,col"`
}

func (cmd *UnclaimCmd) Run(ctx context.Context, g *Globals) error {
	cells, err := parseCells(cmd.Cells)
	if err != nil {
		return err
	}
	return g.withSession(func(s *session) error {
		for _, c := range cells {
			if err := s.svc.Unclaim(ctx, cmd.Player, c); err != nil {
				return err
			}
		}
		s.printf("%s released %s\n", cmd.Player, formatCells(cells))
		return nil
	})
}

type ClearCmd struct {
	All   bool     `help:"Clear every square"`
	Cells []string `arg:"" optional:"" help:"Squares as row,col"`
}

func (cmd *ClearCmd) Validate() error {
	if cmd.All == (len(cmd.Cells) > 0) {
		return errors.New("give either squares or --all")
	}
	return nil
}

func (cmd *ClearCmd) Run(ctx context.Context, g *Globals) error {
	cells := allCells()
	if !cmd.All {
		var err error
		if cells, err = parseCells(cmd.Cells); err != nil {
			return err
		}
	}
	return g.withSession(func(s *session) error {
		cleared, err := s.svc.ClearSquares(ctx, cells...)
		if err != nil {
			return err
		}
		s.printf("Cleared %d squares\n", cleared)
		return nil
	})
}

type AutofillCmd struct {
	Player string `arg:"" help:"Player name or id"`
}

func (cmd *AutofillCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		placed, err := s.svc.AutoFill(ctx, cmd.Player)
		if err != nil {
			return err
		}
		if len(placed) == 0 {
			s.printf("No free squares left for %s\n", cmd.Player)
			return nil
		}
		s.printf("%s got %s\n", cmd.Player, formatCells(placed))
		return nil
	})
}

type LockCmd struct{}

func (cmd *LockCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		st, err := s.svc.Lock(ctx)
		if err != nil {
			return err
		}
		s.printf("Board locked\nRows: %v\nCols: %v\n", st.RowNumbers, st.ColNumbers)
		return nil
	})
}

type UnlockCmd struct{}

func (cmd *UnlockCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		if err := s.svc.Unlock(ctx); err != nil {
			return err
		}
		s.printf("Board unlocked\n")
		return nil
	})
}

type RandomizeNumbersCmd struct{}

func (cmd *RandomizeNumbersCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		st, err := s.svc.RandomizeNumbers(ctx)
		if err != nil {
			return err
		}
		s.printf("Rows: %v\nCols: %v\n", st.RowNumbers, st.ColNumbers)
		return nil
	})
}

type FlipCmd struct{}

func (cmd *FlipCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		o, err := s.svc.FlipOrientation(ctx)
		if err != nil {
			return err
		}
		team := s.cfg.Teams.A
		if o == squares.OrientationARows {
			team = s.cfg.Teams.B
		}
		s.printf("Orientation %s: %s on the columns\n", o, team)
		return nil
	})
}

type BoardCmd struct{}

func (cmd *BoardCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		st, err := s.svc.State(ctx)
		if err != nil {
			return err
		}
		s.printf("%s", newView(s.out, g.NoColor, *s.cfg.Teams).Board(st))
		return nil
	})
}

type StatusCmd struct{}

func (cmd *StatusCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		sum, err := s.svc.Status(ctx)
		if err != nil {
			return err
		}
		s.printf("%s", newView(s.out, g.NoColor, *s.cfg.Teams).Status(sum))
		return nil
	})
}

type ExtrasCmd struct {
	Assign    ExtrasAssignCmd    `cmd:"" help:"Pick the players who get an extra square"`
	Place     ExtrasPlaceCmd     `cmd:"" help:"Place an extra player's bonus square"`
	Randomize ExtrasRandomizeCmd `cmd:"" help:"Pick the extra players and fill the rest of the board"`
}

type ExtrasAssignCmd struct{}

func (cmd *ExtrasAssignCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		players, err := s.svc.AssignExtras(ctx)
		if err != nil {
			return err
		}
		for _, p := range players {
			s.printf("%s gets an extra square\n", p.Name)
		}
		return nil
	})
}

type ExtrasPlaceCmd struct {
	Player string `arg:"" help:"Player name or id"`
	Cell   string `arg:"" help:"Square as row,col"`
}

func (cmd *ExtrasPlaceCmd) Run(ctx context.Context, g *Globals) error {
	c, err := parseCell(cmd.Cell)
	if err != nil {
		return err
	}
	return g.withSession(func(s *session) error {
		if err := s.svc.PlaceExtra(ctx, cmd.Player, c); err != nil {
			return err
		}
		s.printf("%s placed their extra square at %d,%d\n", cmd.Player, c.Row, c.Col)
		return nil
	})
}

type ExtrasRandomizeCmd struct{}

func (cmd *ExtrasRandomizeCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		players, err := s.svc.RandomizeRemaining(ctx)
		if err != nil {
			return err
		}
		for _, p := range players {
			s.printf("%s gets an extra square\n", p.Name)
		}
		return nil
	})
}
