package statistics

import (
	"math"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := New(7, 2)

	if stats.Expected() != 0 {
		t.Errorf("Expected 0 expected count for empty stats, got %f", stats.Expected())
	}
	if stats.StdDev() != 0 {
		t.Errorf("Expected stddev of 0 for empty stats, got %f", stats.StdDev())
	}
	if stats.ChiSquare() != 0 {
		t.Errorf("Expected chi-square of 0 for empty stats, got %f", stats.ChiSquare())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if lo, hi := stats.ConfidenceInterval95(0); lo != 0 || hi != 0 {
		t.Errorf("Expected empty interval, got [%f, %f]", lo, hi)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Empty stats should validate: %v", err)
	}
}

func TestStatistics_Add(t *testing.T) {
	stats := New(3, 1)
	stats.Add(TrialResult{Selected: []int{0}, Seed: 1})
	stats.Add(TrialResult{Selected: []int{2}, Seed: 2})
	stats.Add(TrialResult{Selected: []int{2}, Seed: 3})

	if stats.Trials != 3 {
		t.Errorf("Expected 3 trials, got %d", stats.Trials)
	}
	if stats.Counts[2] != 2 {
		t.Errorf("Expected player 2 picked twice, got %d", stats.Counts[2])
	}
	if math.Abs(stats.Rate(2)-2.0/3.0) > 1e-9 {
		t.Errorf("Expected rate 2/3, got %f", stats.Rate(2))
	}
	if stats.Expected() != 1 {
		t.Errorf("Expected 1 expected pick, got %f", stats.Expected())
	}
	// (1-1)^2/1 + (0-1)^2/1 + (2-1)^2/1
	if stats.ChiSquare() != 2 {
		t.Errorf("Expected chi-square 2, got %f", stats.ChiSquare())
	}
	if stats.Median() != 1 {
		t.Errorf("Expected median 1, got %f", stats.Median())
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestStatistics_IgnoresOutOfRange(t *testing.T) {
	stats := New(2, 1)
	stats.Add(TrialResult{Selected: []int{5}})

	if stats.Picks != 0 {
		t.Errorf("Expected out-of-range pick ignored, got %d picks", stats.Picks)
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error when a trial recorded no pick")
	}
}

func TestStatistics_PerfectlyUniform(t *testing.T) {
	stats := New(4, 2)
	pairs := [][]int{{0, 1}, {2, 3}, {0, 2}, {1, 3}, {0, 3}, {1, 2}}
	for _, p := range pairs {
		stats.Add(TrialResult{Selected: p})
	}

	if stats.ChiSquare() != 0 {
		t.Errorf("Expected chi-square 0, got %f", stats.ChiSquare())
	}
	if stats.MaxAbsZScore() != 0 {
		t.Errorf("Expected no deviation, got %f", stats.MaxAbsZScore())
	}
	if !stats.Fair(0.1) {
		t.Error("Expected uniform counts to be fair")
	}
}

func TestStatistics_DetectsBias(t *testing.T) {
	stats := New(5, 1)
	for i := 0; i < 1000; i++ {
		stats.Add(TrialResult{Selected: []int{0}})
	}
	if stats.Fair(4) {
		t.Errorf("Always picking player 0 should not look fair (max z %f)", stats.MaxAbsZScore())
	}
	if stats.ZScore(0) <= 0 || stats.ZScore(1) >= 0 {
		t.Errorf("Unexpected z-scores: %f, %f", stats.ZScore(0), stats.ZScore(1))
	}
}

func TestStatistics_Merge(t *testing.T) {
	a := New(3, 1)
	b := New(3, 1)
	a.Add(TrialResult{Selected: []int{0}})
	b.Add(TrialResult{Selected: []int{1}})
	b.Add(TrialResult{Selected: []int{1}})

	if err := a.Merge(b); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if a.Trials != 3 || a.Counts[1] != 2 {
		t.Errorf("Unexpected merged stats: trials=%d counts=%v", a.Trials, a.Counts)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Merged stats should validate: %v", err)
	}

	if err := a.Merge(New(4, 1)); err == nil {
		t.Error("Expected error merging mismatched shapes")
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := New(2, 1)
	for i := 0; i < 100; i++ {
		stats.Add(TrialResult{Selected: []int{i % 2}})
	}
	lo, hi := stats.ConfidenceInterval95(0)
	if lo >= 0.5 || hi <= 0.5 {
		t.Errorf("Expected interval around 0.5, got [%f, %f]", lo, hi)
	}
	if math.Abs((hi-lo)/2-1.96*0.05) > 1e-9 {
		t.Errorf("Unexpected margin %f", (hi-lo)/2)
	}
}

func TestStatistics_Percentile(t *testing.T) {
	stats := &Statistics{Players: 4, Counts: []int{4, 1, 3, 2}}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.5, 2.5},
		{1, 4},
	}
	for _, tt := range tests {
		if got := stats.Percentile(tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Percentile(%v) = %f, want %f", tt.p, got, tt.want)
		}
	}
}
