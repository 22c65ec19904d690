package main

import (
	"context"

	"github.com/lox/squares/internal/squares"
)

type WinnerCmd struct {
	Compute WinnerComputeCmd `cmd:"" help:"Show who a score would pay without recording it"`
	Record  WinnerRecordCmd  `cmd:"" help:"Record a checkpoint winner"`
	Clear   WinnerClearCmd   `cmd:"" help:"Remove a checkpoint's winner"`
	List    WinnerListCmd    `cmd:"" default:"1" help:"List recorded winners"`
}

type ScoreArgs struct {
	Checkpoint string `arg:"" enum:"Q1,Q2,Q3,Final" help:"Checkpoint (Q1, Q2, Q3, Final)"`
	ScoreA     int    `arg:"" name:"score-a" help:"First team's score"`
	ScoreB     int    `arg:"" name:"score-b" help:"Second team's score"`
}

type WinnerComputeCmd struct {
	ScoreArgs `embed:""`
}

func (cmd *WinnerComputeCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		res, err := s.svc.ComputeWinner(ctx, squares.Checkpoint(cmd.Checkpoint), cmd.ScoreA, cmd.ScoreB)
		if err != nil {
			return err
		}
		s.printf("%s %d-%d → digits %d/%d → square %d,%d: ",
			res.Checkpoint, res.ScoreA, res.ScoreB, res.DigitA, res.DigitB, res.Row, res.Col)
		if res.Unclaimed {
			s.printf("unclaimed\n")
			return nil
		}
		s.printf("%s\n", res.PlayerName)
		return nil
	})
}

type WinnerRecordCmd struct {
	ScoreArgs `embed:""`
}

func (cmd *WinnerRecordCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		rec, err := s.svc.RecordWinner(ctx, squares.Checkpoint(cmd.Checkpoint), cmd.ScoreA, cmd.ScoreB)
		if err != nil {
			return err
		}
		s.printf("%s winner: %s\n", rec.Checkpoint, *rec.WinningPlayerName)
		return nil
	})
}

type WinnerClearCmd struct {
	Checkpoint string `arg:"" enum:"Q1,Q2,Q3,Final" help:"Checkpoint (Q1, Q2, Q3, Final)"`
}

func (cmd *WinnerClearCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		if err := s.svc.ClearWinner(ctx, squares.Checkpoint(cmd.Checkpoint)); err != nil {
			return err
		}
		s.printf("Cleared %s winner\n", cmd.Checkpoint)
		return nil
	})
}

type WinnerListCmd struct{}

func (cmd *WinnerListCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		winners, err := s.svc.Winners(ctx)
		if err != nil {
			return err
		}
		if len(winners) == 0 {
			s.printf("No winners recorded\n")
			return nil
		}
		s.printf("%s", newView(s.out, g.NoColor, *s.cfg.Teams).Winners(winners))
		return nil
	})
}
