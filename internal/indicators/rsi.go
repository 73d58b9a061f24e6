package indicators

import (
	"fmt"

	"pumpScout/internal/domain"
)

// RSIConfig holds configuration for the RSI indicator.
type RSIConfig struct {
	IndicatorConfig
	Oversold float64 // RSI below this maps to the full bullish score
	Bearish  float64 // RSI at or above this maps to zero
}

// RSI implements the Relative Strength Index indicator.
type RSI struct {
	BaseIndicator
	config RSIConfig
}

// NewRSI creates a new RSI indicator instance. Zero thresholds fall back to
// the conventional 30/50 bands.
func NewRSI(config RSIConfig) *RSI {
	if config.Oversold == 0 {
		config.Oversold = 30
	}
	if config.Bearish == 0 {
		config.Bearish = 50
	}
	return &RSI{
		BaseIndicator: BaseIndicator{Config: config.IndicatorConfig},
		config:        config,
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() string {
	return "RSI"
}

// Calculate computes the RSI value using Wilder's smoothing method.
func (r *RSI) Calculate(klines []*domain.Kline) (float64, error) {
	if len(klines) <= r.Config.Period {
		return 0, fmt.Errorf("not enough data (%d) to calculate RSI for period %d", len(klines), r.Config.Period)
	}

	// Calculate price changes
	changes := make([]float64, 0, len(klines)-1)
	for i := 1; i < len(klines); i++ {
		change := klines[i].Close - klines[i-1].Close
		changes = append(changes, change)
	}

	// Calculate initial average gain and loss
	var avgGain, avgLoss float64
	for i := 0; i < r.Config.Period; i++ {
		if changes[i] > 0 {
			avgGain += changes[i]
		} else {
			avgLoss -= changes[i]
		}
	}
	avgGain /= float64(r.Config.Period)
	avgLoss /= float64(r.Config.Period)

	// Smooth the averages over the remaining changes (Wilder's method)
	for i := r.Config.Period; i < len(changes); i++ {
		if changes[i] > 0 {
			avgGain = (avgGain*float64(r.Config.Period-1) + changes[i]) / float64(r.Config.Period)
			avgLoss = (avgLoss * float64(r.Config.Period-1)) / float64(r.Config.Period)
		} else {
			avgGain = (avgGain * float64(r.Config.Period-1)) / float64(r.Config.Period)
			avgLoss = (avgLoss*float64(r.Config.Period-1) - changes[i]) / float64(r.Config.Period)
		}
	}

	if avgLoss == 0 {
		if avgGain == 0 {
			// Flat series: RSI is undefined, the caller falls back to neutral.
			return 0, fmt.Errorf("RSI undefined for flat series")
		}
		return 100, nil // Max RSI if only gains
	}

	rs := avgGain / avgLoss
	rsi := 100 - (100 / (1 + rs))

	if rsi > 100 {
		rsi = 100
	} else if rsi < 0 {
		rsi = 0
	}

	return rsi, nil
}

// Score maps the latest RSI value onto a [0,1] sub-score: oversold is bullish
// (1.0), the band below Bearish is neutral (0.5), anything above scores 0.
// A series too short to compute RSI scores Neutral.
func (r *RSI) Score(klines []*domain.Kline) domain.SubScore {
	value, err := r.Calculate(klines)
	if err != nil {
		return domain.SubScore{Name: domain.ScoreRSI, Value: Neutral}
	}

	score := 0.0
	switch {
	case value < r.config.Oversold:
		score = 1.0
	case value < r.config.Bearish:
		score = 0.5
	}
	return domain.SubScore{Name: domain.ScoreRSI, Value: score, Raw: value}
}
