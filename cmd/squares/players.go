package main

import (
	"context"
	"fmt"
	"regexp"
)

type PlayersCmd struct {
	List     PlayersListCmd     `cmd:"" default:"1" help:"List players"`
	Add      PlayersAddCmd      `cmd:"" help:"Add players"`
	Rename   PlayersRenameCmd   `cmd:"" help:"Rename a player"`
	Remove   PlayersRemoveCmd   `cmd:"" help:"Remove a player and release their squares"`
	Color    PlayersColorCmd    `cmd:"" help:"Set a player's color"`
	Initials PlayersInitialsCmd `cmd:"" help:"Set the label shown in a player's squares"`
	Init     PlayersInitCmd     `cmd:"" help:"Create players from the props friends list"`
}

type PlayersListCmd struct{}

func (cmd *PlayersListCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		st, err := s.svc.State(ctx)
		if err != nil {
			return err
		}
		if len(st.Players) == 0 {
			s.printf("No players yet\n")
			return nil
		}
		s.printf("%s", newView(s.out, g.NoColor, *s.cfg.Teams).Players(st))
		return nil
	})
}

type PlayersAddCmd struct {
	Names []string `arg:"" help:"Player names"`
}

func (cmd *PlayersAddCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		for _, name := range cmd.Names {
			p, err := s.svc.AddPlayer(ctx, name)
			if err != nil {
				return err
			}
			s.printf("Added %s (%s)\n", p.Name, p.Color)
		}
		return nil
	})
}

type PlayersRenameCmd struct {
	Player string `arg:"" help:"Player name or id"`
	Name   string `arg:"" help:"New name"`
}

func (cmd *PlayersRenameCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		if err := s.svc.RenamePlayer(ctx, cmd.Player, cmd.Name); err != nil {
			return err
		}
		s.printf("Renamed %s to %s\n", cmd.Player, cmd.Name)
		return nil
	})
}

type PlayersRemoveCmd struct {
	Player string `arg:"" help:"Player name or id"`
}

func (cmd *PlayersRemoveCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		released, err := s.svc.RemovePlayer(ctx, cmd.Player)
		if err != nil {
			return err
		}
		s.printf("Removed %s, released %d squares\n", cmd.Player, released)
		return nil
	})
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type PlayersColorCmd struct {
	Player string `arg:"" help:"Player name or id"`
	Color  string `arg:"" help:"Color as #rrggbb"`
}

func (cmd *PlayersColorCmd) Validate() error {
	if !hexColor.MatchString(cmd.Color) {
		return fmt.Errorf("color %q is not #rrggbb", cmd.Color)
	}
	return nil
}

func (cmd *PlayersColorCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		if err := s.svc.SetColor(ctx, cmd.Player, cmd.Color); err != nil {
			return err
		}
		s.printf("Set %s color to %s\n", cmd.Player, cmd.Color)
		return nil
	})
}

type PlayersInitialsCmd struct {
	Player   string `arg:"" help:"Player name or id"`
	Initials string `arg:"" help:"Up to three characters"`
}

func (cmd *PlayersInitialsCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		return s.svc.SetInitials(ctx, cmd.Player, cmd.Initials)
	})
}

type PlayersInitCmd struct{}

func (cmd *PlayersInitCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		added, err := s.svc.InitPlayersFromProps(ctx)
		if err != nil {
			return err
		}
		if len(added) == 0 {
			s.printf("Players already exist, nothing to do\n")
			return nil
		}
		for _, p := range added {
			s.printf("Added %s (%s)\n", p.Name, p.Color)
		}
		return nil
	})
}
