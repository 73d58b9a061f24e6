package scoring

import (
	"math"

	"pumpScout/internal/domain"
)

// AggregateSentiment reduces per-signal sentiment values to a single raw
// sentiment for the cycle, weighting each signal by its engagement score so a
// widely shared post dominates a throwaway mention. Signals with non-positive
// engagement still count with unit weight. An empty cycle yields NaN, which
// the scorer maps to a zero sentiment sub-score.
func AggregateSentiment(signals []domain.Signal, sentiments []float64) float64 {
	if len(signals) == 0 || len(signals) != len(sentiments) {
		return math.NaN()
	}

	var weighted, totalWeight float64
	for i, sig := range signals {
		if math.IsNaN(sentiments[i]) {
			continue
		}
		weight := sig.EngagementScore
		if weight <= 0 {
			weight = 1
		}
		weighted += weight * sentiments[i]
		totalWeight += weight
	}
	if totalWeight == 0 {
		return math.NaN()
	}
	return weighted / totalWeight
}
