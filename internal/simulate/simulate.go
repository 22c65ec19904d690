// Package simulate replays the extra-square draw many times to measure how
// evenly the random source spreads extra squares across players.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/squares/internal/randutil"
	"github.com/lox/squares/internal/squares"
	"github.com/lox/squares/internal/statistics"
)

// Mode selects which operation each trial exercises.
type Mode string

const (
	// ModeAssign runs AssignExtras on a board where every player holds the base quota.
	ModeAssign Mode = "assign"
	// ModeRandomize runs RandomizeRemaining on the same board.
	ModeRandomize Mode = "randomize"
)

// ErrNoRemainder is returned when the player count divides 100 evenly.
var ErrNoRemainder = errors.New("simulate: no extra squares to hand out")

// Config describes a simulation run.
type Config struct {
	Players int
	Trials  int
	Seed    int64
	Workers int
	Mode    Mode
}

func (c Config) validate() error {
	if c.Players < 2 || c.Players > squares.TotalCells {
		return fmt.Errorf("simulate: players must be between 2 and %d, got %d", squares.TotalCells, c.Players)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("simulate: trials must be positive, got %d", c.Trials)
	}
	if c.Mode != ModeAssign && c.Mode != ModeRandomize {
		return fmt.Errorf("simulate: unknown mode %q", c.Mode)
	}
	if squares.Remainder(c.Players) == 0 {
		return fmt.Errorf("%w: %d players", ErrNoRemainder, c.Players)
	}
	return nil
}

// BaseBoard returns a board with n players who each hold exactly the base
// quota, claimed in board order.
func BaseBoard(n int) (*squares.State, error) {
	st := squares.NewState()
	rng := randutil.New(0)
	for i := 0; i < n; i++ {
		if _, err := st.AddPlayer(fmt.Sprintf("Player %d", i+1), fmt.Sprintf("p%d", i+1), rng); err != nil {
			return nil, err
		}
	}
	next := 0
	for _, p := range st.Players {
		for st.ClaimedCount(p.ID) < st.BaseQuota() {
			if err := st.Claim(p.ID, st.Board[next].Cell()); err != nil {
				return nil, err
			}
			next++
		}
	}
	return st, nil
}

// Run executes cfg.Trials draws across workers and returns the merged
// selection counts. The same Config always yields the same counts.
func Run(ctx context.Context, cfg Config) (*statistics.Statistics, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	base, err := BaseBoard(cfg.Players)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(base.Players))
	for i, p := range base.Players {
		index[p.ID] = i
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = min(runtime.NumCPU(), 8)
	}
	workers = min(workers, cfg.Trials)

	perWorker := cfg.Trials / workers
	extra := cfg.Trials % workers
	results := make([]*statistics.Statistics, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		trials := perWorker
		if w < extra {
			trials++
		}
		seed := cfg.Seed + int64(w)
		g.Go(func() error {
			stats, err := runWorker(ctx, cfg.Mode, base, index, trials, seed)
			results[w] = stats
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := statistics.New(cfg.Players, squares.Remainder(cfg.Players))
	for _, r := range results {
		if err := total.Merge(r); err != nil {
			return nil, err
		}
	}
	return total, total.Validate()
}

func runWorker(ctx context.Context, mode Mode, base *squares.State, index map[string]int, trials int, seed int64) (*statistics.Statistics, error) {
	rng := randutil.New(seed)
	stats := statistics.New(len(base.Players), base.Remainder())
	for t := 0; t < trials; t++ {
		if t%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		st := base.Clone()
		var (
			ids []string
			err error
		)
		switch mode {
		case ModeRandomize:
			ids, err = st.RandomizeRemaining(rng)
		default:
			ids, err = st.AssignExtras(rng)
		}
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", t, err)
		}
		picked := make([]int, 0, len(ids))
		for _, id := range ids {
			picked = append(picked, index[id])
		}
		stats.Add(statistics.TrialResult{Selected: picked, Seed: seed})
	}
	return stats, nil
}
