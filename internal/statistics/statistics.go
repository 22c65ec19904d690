// Package statistics measures how evenly extra squares are handed out over
// many simulated draws.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// TrialResult represents the outcome of a single extra-square draw
type TrialResult struct {
	Selected []int // Indexes of the players picked for an extra square
	Seed     int64 // RNG seed for this trial (for replay)
}

// Statistics tracks per-player selection counts across trials
type Statistics struct {
	Players  int   // Number of players in every trial
	PerTrial int   // Players picked per trial (the remainder)
	Trials   int   // Trials recorded
	Counts   []int // Times each player was picked
	Picks    int   // Total picks, for the ledger check
}

// New returns empty statistics for a board of players where perTrial of them
// are picked each draw.
func New(players, perTrial int) *Statistics {
	return &Statistics{
		Players:  players,
		PerTrial: perTrial,
		Counts:   make([]int, players),
	}
}

// Add incorporates a trial. Indexes outside the board are ignored.
func (s *Statistics) Add(result TrialResult) {
	s.Trials++
	for _, i := range result.Selected {
		if i < 0 || i >= s.Players {
			continue
		}
		s.Counts[i]++
		s.Picks++
	}
}

// Merge folds another worker's statistics into s.
func (s *Statistics) Merge(other *Statistics) error {
	if other.Players != s.Players || other.PerTrial != s.PerTrial {
		return fmt.Errorf("cannot merge %dx%d statistics into %dx%d",
			other.Players, other.PerTrial, s.Players, s.PerTrial)
	}
	s.Trials += other.Trials
	s.Picks += other.Picks
	for i, c := range other.Counts {
		s.Counts[i] += c
	}
	return nil
}

// ExpectedRate is the chance a given player is picked in one trial
func (s *Statistics) ExpectedRate() float64 {
	if s.Players == 0 {
		return 0
	}
	return float64(s.PerTrial) / float64(s.Players)
}

// Expected returns the selection count every player should approach
func (s *Statistics) Expected() float64 {
	return float64(s.Trials) * s.ExpectedRate()
}

// Rate returns how often player i was picked per trial
func (s *Statistics) Rate(i int) float64 {
	if s.Trials == 0 || i < 0 || i >= s.Players {
		return 0
	}
	return float64(s.Counts[i]) / float64(s.Trials)
}

// StdDev returns the binomial standard deviation of one player's count
func (s *Statistics) StdDev() float64 {
	p := s.ExpectedRate()
	return math.Sqrt(float64(s.Trials) * p * (1 - p))
}

// ZScore returns how many standard deviations player i sits from expectation
func (s *Statistics) ZScore(i int) float64 {
	sd := s.StdDev()
	if sd == 0 || i < 0 || i >= s.Players {
		return 0
	}
	return (float64(s.Counts[i]) - s.Expected()) / sd
}

// MaxAbsZScore returns the largest deviation across players
func (s *Statistics) MaxAbsZScore() float64 {
	worst := 0.0
	for i := range s.Counts {
		worst = math.Max(worst, math.Abs(s.ZScore(i)))
	}
	return worst
}

// ConfidenceInterval95 returns the 95% confidence interval for player i's rate
func (s *Statistics) ConfidenceInterval95(i int) (float64, float64) {
	if s.Trials == 0 {
		return 0, 0
	}
	p := s.Rate(i)
	margin := 1.96 * math.Sqrt(p*(1-p)/float64(s.Trials))
	return p - margin, p + margin
}

// ChiSquare returns Pearson's statistic of the counts against a uniform pick
func (s *Statistics) ChiSquare() float64 {
	e := s.Expected()
	if e == 0 {
		return 0
	}
	chi := 0.0
	for _, c := range s.Counts {
		d := float64(c) - e
		chi += d * d / e
	}
	return chi
}

// Fair reports whether every player's count is within z standard deviations
func (s *Statistics) Fair(z float64) bool {
	return s.MaxAbsZScore() <= z
}

// Median returns the median selection count
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the selection count at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Counts) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Counts))
	for i, c := range s.Counts {
		sorted[i] = float64(c)
	}
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the counts add up
func (s *Statistics) Validate() error {
	if len(s.Counts) != s.Players {
		return fmt.Errorf("counts length (%d) does not match players (%d)", len(s.Counts), s.Players)
	}
	total := 0
	for _, c := range s.Counts {
		total += c
	}
	if total != s.Picks {
		return fmt.Errorf("ledger mismatch: counts sum to %d, picks recorded %d", total, s.Picks)
	}
	if s.Picks != s.Trials*s.PerTrial {
		return fmt.Errorf("picks (%d) do not match trials (%d) x per-trial (%d)", s.Picks, s.Trials, s.PerTrial)
	}
	return nil
}
