package service

import (
	"context"
	"fmt"

	"github.com/lox/squares/internal/randutil"
	"github.com/lox/squares/internal/squares"
)

// ComputeWinner resolves a score without recording anything.
func (s *Service) ComputeWinner(ctx context.Context, c squares.Checkpoint, scoreA, scoreB int) (squares.WinnerResult, error) {
	st, err := s.State(ctx)
	if err != nil {
		return squares.WinnerResult{}, err
	}
	res, err := st.ComputeWinner(c, scoreA, scoreB)
	if err != nil {
		return squares.WinnerResult{}, fmt.Errorf("compute %s winner: %w", c, err)
	}
	return res, nil
}

// RecordWinner resolves and stores a checkpoint winner, stamped with the
// service clock and the configured payout for that checkpoint.
func (s *Service) RecordWinner(ctx context.Context, c squares.Checkpoint, scoreA, scoreB int) (squares.WinnerRecord, error) {
	var payout *float64
	if amount, ok := s.payouts[c]; ok {
		payout = &amount
	}

	var rec squares.WinnerRecord
	_, err := s.update(ctx, "record winner", func(st *squares.State, _ randutil.Source) error {
		var err error
		rec, err = st.RecordWinner(c, scoreA, scoreB, s.clock.Now(), payout)
		if err != nil {
			return fmt.Errorf("record %s winner: %w", c, err)
		}
		return nil
	})
	if err != nil {
		return squares.WinnerRecord{}, err
	}
	s.logger.Info("Winner recorded",
		"checkpoint", c,
		"score", fmt.Sprintf("%d-%d", scoreA, scoreB),
		"player", *rec.WinningPlayerName)
	return rec, nil
}

// ClearWinner removes a checkpoint's winner so it can be recorded again.
func (s *Service) ClearWinner(ctx context.Context, c squares.Checkpoint) error {
	_, err := s.update(ctx, "clear winner", func(st *squares.State, _ randutil.Source) error {
		if err := st.ClearWinner(c); err != nil {
			return fmt.Errorf("clear %s winner: %w", c, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Winner cleared", "checkpoint", c)
	return nil
}

// Winners returns the recorded winners in recording order.
func (s *Service) Winners(ctx context.Context) ([]squares.WinnerRecord, error) {
	st, err := s.State(ctx)
	if err != nil {
		return nil, err
	}
	return st.Winners, nil
}
