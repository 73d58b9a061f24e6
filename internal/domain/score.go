package domain

import (
	"fmt"
	"math"
)

// Sub-score names used in the composite weight table.
const (
	ScoreRSI          = "rsi_score"
	ScoreMACD         = "macd_score"
	ScoreSMACrossover = "sma_crossover_score"
	ScoreEMACrossover = "ema_crossover_score"
	ScoreVolumeSpike  = "volume_spike_score"
	ScoreSentiment    = "sentiment_score"
	ScoreHistorical   = "historical_score"
)

// SubScore is a single indicator or signal normalized to [0,1], together with
// the raw metric it was derived from, kept for auditability.
type SubScore struct {
	Name  string
	Value float64 // Normalized score in [0,1]
	Raw   float64 // Raw metric the score was derived from (e.g., the RSI value)
}

// Weights maps sub-score names to their share of the composite total.
type Weights map[string]float64

// Validate checks that the weight table sums to 1.0 (within a small epsilon)
// and that no weight is negative.
func (w Weights) Validate() error {
	sum := 0.0
	for name, weight := range w {
		if weight < 0 {
			return fmt.Errorf("weight for %q is negative (%f)", name, weight)
		}
		sum += weight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("weights sum to %f, expected 1.0", sum)
	}
	return nil
}

// CompositeScore is the weighted [0,100] fusion of all sub-scores for one
// asset in one evaluation cycle. It is created fresh per cycle and never
// mutated after production.
type CompositeScore struct {
	Symbol    string
	SubScores map[string]SubScore
	Weights   Weights
	Total     float64 // In [0,100]
}
