package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/lox/squares/internal/simulate"
	"github.com/lox/squares/internal/statistics"
)

type SimulateCmd struct {
	Players   int     `default:"7" help:"Number of players on the simulated board"`
	Trials    int     `default:"100000" help:"Number of draws to simulate"`
	Seed      int64   `default:"0" help:"RNG seed (0 for random)"`
	Workers   int     `default:"0" help:"Parallel workers (0 for one per CPU, at most 8)"`
	Mode      string  `default:"assign" enum:"assign,randomize" help:"Draw to exercise: assign or randomize"`
	Tolerance float64 `default:"4" help:"Largest z-score still reported as fair"`
}

func (cmd *SimulateCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := g.logger(cfg).WithPrefix("SIM")

	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Starting simulation", "players", cmd.Players, "trials", cmd.Trials, "mode", cmd.Mode, "seed", seed)

	start := time.Now()
	stats, err := simulate.Run(ctx, simulate.Config{
		Players: cmd.Players,
		Trials:  cmd.Trials,
		Seed:    seed,
		Workers: cmd.Workers,
		Mode:    simulate.Mode(cmd.Mode),
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.Debug("Simulation finished", "elapsed", elapsed,
		"trials_per_sec", fmt.Sprintf("%.0f", float64(stats.Trials)/elapsed.Seconds()))

	printReport(g.stdout(), stats, seed, cmd.Tolerance)
	return nil
}

func printReport(w io.Writer, stats *statistics.Statistics, seed int64, tolerance float64) {
	fmt.Fprintf(w, "=== %d DRAWS, %d PLAYERS, %d EXTRA PER DRAW ===\n", stats.Trials, stats.Players, stats.PerTrial)
	fmt.Fprintf(w, "Seed: %d\n", seed)
	fmt.Fprintf(w, "Expected rate: %.4f (%.1f picks each)\n\n", stats.ExpectedRate(), stats.Expected())

	fmt.Fprintf(w, "%-8s %10s %8s %19s %8s\n", "Player", "Picks", "Rate", "95% CI", "z")
	for i := 0; i < stats.Players; i++ {
		low, high := stats.ConfidenceInterval95(i)
		fmt.Fprintf(w, "%-8d %10d %8.4f  [%.4f, %.4f] %+8.2f\n",
			i+1, stats.Counts[i], stats.Rate(i), low, high, stats.ZScore(i))
	}

	fmt.Fprintf(w, "\nMedian picks: %.1f (p10 %.1f, p90 %.1f)\n",
		stats.Median(), stats.Percentile(0.1), stats.Percentile(0.9))
	fmt.Fprintf(w, "Chi-square: %.2f on %d degrees of freedom\n", stats.ChiSquare(), stats.Players-1)
	fmt.Fprintf(w, "Max |z|: %.2f\n", stats.MaxAbsZScore())
	if stats.Fair(tolerance) {
		fmt.Fprintf(w, "Verdict: fair (every player within %.1f standard deviations)\n", tolerance)
		return
	}
	fmt.Fprintf(w, "Verdict: SUSPECT (some player beyond %.1f standard deviations)\n", tolerance)
}
