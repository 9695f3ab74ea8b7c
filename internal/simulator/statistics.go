package simulator

import (
	"fmt"
	"math"
	"sort"
)

// RoundResult is the outcome of one simulated round, in betting units.
type RoundResult struct {
	NetUnits   float64
	Seed       int64
	Hands      int // hands resolved this round (splits produce more than one)
	Blackjacks int
	Surrenders int
}

// Statistics accumulates simulation results for expected-value
// analysis.
type Statistics struct {
	Rounds    int
	SumUnits  float64
	SumUnits2 float64 // sum of squares for variance
	Values    []float64

	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Surrenders int
	HandsTotal int
}

// Add incorporates one round result.
func (s *Statistics) Add(result RoundResult) {
	net := result.NetUnits
	s.Rounds++
	s.SumUnits += net
	s.SumUnits2 += net * net
	s.Values = append(s.Values, net)

	switch {
	case net > 0:
		s.Wins++
	case net < 0:
		s.Losses++
	default:
		s.Pushes++
	}
	s.Blackjacks += result.Blackjacks
	s.Surrenders += result.Surrenders
	s.HandsTotal += result.Hands
}

// Merge folds another statistics block into this one. Percentile data
// is concatenated; counters add.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumUnits += other.SumUnits
	s.SumUnits2 += other.SumUnits2
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Blackjacks += other.Blackjacks
	s.Surrenders += other.Surrenders
	s.HandsTotal += other.HandsTotal
}

// Mean returns the average net units per round.
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumUnits / float64(s.Rounds)
}

// Variance returns the sample variance of round results.
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumUnits2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the
// mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median net units per round.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the pth percentile (0 < p < 1) of round results.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), s.Values...)
	sort.Float64s(sorted)
	idx := int(p * float64(len(sorted)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// WinRate returns the fraction of rounds won.
func (s *Statistics) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// Validate checks internal consistency.
func (s *Statistics) Validate() error {
	if s.Wins+s.Losses+s.Pushes != s.Rounds {
		return fmt.Errorf("outcome counts (%d+%d+%d) do not sum to rounds (%d)",
			s.Wins, s.Losses, s.Pushes, s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("value count %d does not match rounds %d", len(s.Values), s.Rounds)
	}
	return nil
}

// Summary renders the headline numbers.
func (s *Statistics) Summary() string {
	low, high := s.ConfidenceInterval95()
	return fmt.Sprintf(
		"rounds=%d hands=%d mean=%.4f units/round stddev=%.4f 95%%CI=[%.4f, %.4f] win=%.1f%% bj=%d surr=%d",
		s.Rounds, s.HandsTotal, s.Mean(), s.StdDev(), low, high,
		s.WinRate()*100, s.Blackjacks, s.Surrenders)
}
