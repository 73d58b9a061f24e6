// Package scoring fuses the normalized sub-scores into the composite
// confidence score for one asset, and normalizes the raw sentiment and
// historical inputs onto the common [0,1] scale.
package scoring

import (
	"fmt"
	"math"

	"pumpScout/internal/domain"
	"pumpScout/internal/ports"
)

// DefaultWeights is the fixed weight table of the composite. It must sum to 1.0.
func DefaultWeights() domain.Weights {
	return domain.Weights{
		domain.ScoreRSI:          0.15,
		domain.ScoreMACD:         0.15,
		domain.ScoreSMACrossover: 0.15,
		domain.ScoreEMACrossover: 0.15,
		domain.ScoreVolumeSpike:  0.15,
		domain.ScoreSentiment:    0.15,
		domain.ScoreHistorical:   0.10,
	}
}

// ScorerConfig holds the normalization parameters of the composite scorer.
type ScorerConfig struct {
	Weights            domain.Weights // nil means DefaultWeights
	SentimentThreshold float64        // Sentiment at or above this scores 1.0 (default 0.8)
	HistoricalMax      int            // Historical score normalization ceiling (default 20)
}

// Scorer combines pre-normalized sub-scores into a bounded composite total.
type Scorer struct {
	weights            domain.Weights
	sentimentThreshold float64
	historicalMax      int
}

// NewScorer validates the weight table and returns a ready scorer. A weight
// table that does not sum to 1.0 is an invariant violation, not a warning.
func NewScorer(cfg ScorerConfig) (*Scorer, error) {
	weights := cfg.Weights
	if weights == nil {
		weights = DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrInvariantViolation, err)
	}
	if cfg.SentimentThreshold == 0 {
		cfg.SentimentThreshold = 0.8
	}
	if cfg.HistoricalMax == 0 {
		cfg.HistoricalMax = 20
	}
	return &Scorer{
		weights:            weights,
		sentimentThreshold: cfg.SentimentThreshold,
		historicalMax:      cfg.HistoricalMax,
	}, nil
}

// SentimentScore normalizes a raw sentiment value (already in [0,1]) onto the
// sub-score scale: values at or above the threshold score 1.0, lower values
// ramp linearly. Missing (NaN) sentiment scores 0.
func (s *Scorer) SentimentScore(sentiment float64) domain.SubScore {
	if math.IsNaN(sentiment) {
		return domain.SubScore{Name: domain.ScoreSentiment, Value: 0, Raw: math.NaN()}
	}
	value := sentiment / s.sentimentThreshold
	if value > 1.0 {
		value = 1.0
	}
	if value < 0 {
		value = 0
	}
	return domain.SubScore{Name: domain.ScoreSentiment, Value: value, Raw: sentiment}
}

// HistoricalScore normalizes the integer pump score onto [0,1].
func (s *Scorer) HistoricalScore(histScore int) domain.SubScore {
	if histScore < 0 {
		histScore = 0
	}
	value := float64(histScore) / float64(s.historicalMax)
	if value > 1.0 {
		value = 1.0
	}
	return domain.SubScore{Name: domain.ScoreHistorical, Value: value, Raw: float64(histScore)}
}

// Score fuses the technical sub-scores with the sentiment and historical
// inputs into a composite in [0,100]. The returned CompositeScore is complete:
// any weighted name missing from the technical map contributes 0.
func (s *Scorer) Score(symbol string, technical map[string]domain.SubScore, sentiment float64, histScore int) *domain.CompositeScore {
	subScores := make(map[string]domain.SubScore, len(s.weights))
	for name, sub := range technical {
		subScores[name] = sub
	}
	subScores[domain.ScoreSentiment] = s.SentimentScore(sentiment)
	subScores[domain.ScoreHistorical] = s.HistoricalScore(histScore)

	total := 0.0
	for name, weight := range s.weights {
		total += weight * subScores[name].Value
	}

	return &domain.CompositeScore{
		Symbol:    symbol,
		SubScores: subScores,
		Weights:   s.weights,
		Total:     total * 100,
	}
}
