// Package history scans past candles for pump signatures: intervals with an
// outsized close-over-open gain and intervals whose volume dwarfs the window
// mean. The resulting integer score is a base-rate confidence signal consumed
// by both the composite scorer and the position sizer.
package history

import "pumpScout/internal/domain"

// AnalyzerConfig holds the pump-pattern thresholds.
type AnalyzerConfig struct {
	PumpThresholdPct float64 // Close-over-open gain classifying a pump (default 20)
	VolumeMultiple   float64 // Multiple of mean volume classifying a spike (default 3)
	MinOccurrences   int     // Occurrences above which each component scores (default 2)
	ScorePerSignal   int     // Points granted per satisfied component (default 10)
}

// Details carries the window statistics behind a score, for logging.
type Details struct {
	AvgPriceIncrease float64
	MaxPriceIncrease float64
	AvgVolume        float64
	MaxVolume        float64
	PumpCount        int
	VolumeSpikeCount int
}

// Analyzer classifies historical pump behavior in a lookback window.
type Analyzer struct {
	config AnalyzerConfig
}

// NewAnalyzer creates a pattern analyzer, applying defaults for zero fields.
func NewAnalyzer(config AnalyzerConfig) *Analyzer {
	if config.PumpThresholdPct == 0 {
		config.PumpThresholdPct = 20
	}
	if config.VolumeMultiple == 0 {
		config.VolumeMultiple = 3
	}
	if config.MinOccurrences == 0 {
		config.MinOccurrences = 2
	}
	if config.ScorePerSignal == 0 {
		config.ScorePerSignal = 10
	}
	return &Analyzer{config: config}
}

// MaxScore returns the highest score Analyze can produce.
func (a *Analyzer) MaxScore() int {
	return 2 * a.config.ScorePerSignal
}

// Analyze computes the historical pump score for the window. The score is one
// of {0, ScorePerSignal, 2*ScorePerSignal}: one component for repeated pump
// candles, one for repeated volume spikes. An empty window scores 0.
func (a *Analyzer) Analyze(klines []*domain.Kline) (int, Details) {
	var d Details
	if len(klines) == 0 {
		return 0, d
	}

	increases := make([]float64, 0, len(klines))
	var volumeSum float64
	for _, k := range klines {
		pct := 0.0
		if k.Open > 0 {
			pct = (k.Close - k.Open) / k.Open * 100
		}
		increases = append(increases, pct)

		volumeSum += k.Volume
		if k.Volume > d.MaxVolume {
			d.MaxVolume = k.Volume
		}
		if pct > d.MaxPriceIncrease {
			d.MaxPriceIncrease = pct
		}
	}
	d.AvgVolume = volumeSum / float64(len(klines))

	var increaseSum float64
	for i, pct := range increases {
		increaseSum += pct
		if pct > a.config.PumpThresholdPct {
			d.PumpCount++
		}
		if klines[i].Volume > a.config.VolumeMultiple*d.AvgVolume {
			d.VolumeSpikeCount++
		}
	}
	d.AvgPriceIncrease = increaseSum / float64(len(increases))

	score := 0
	if d.PumpCount > a.config.MinOccurrences {
		score += a.config.ScorePerSignal
	}
	if d.VolumeSpikeCount > a.config.MinOccurrences {
		score += a.config.ScorePerSignal
	}
	return score, d
}
