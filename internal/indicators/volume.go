package indicators

import (
	"math"

	"pumpScout/internal/domain"
)

// VolumeSpikeConfig holds the spike thresholds as multiples of the trailing
// average volume.
type VolumeSpikeConfig struct {
	SpikeMultiple float64 // Full-score threshold (default 3.0)
	WarmMultiple  float64 // Half-score threshold (default 1.5)
}

// VolumeSpike scores the current volume against a trailing average.
type VolumeSpike struct {
	config VolumeSpikeConfig
}

// NewVolumeSpike creates a new volume-spike indicator instance.
func NewVolumeSpike(config VolumeSpikeConfig) *VolumeSpike {
	if config.SpikeMultiple == 0 {
		config.SpikeMultiple = 3.0
	}
	if config.WarmMultiple == 0 {
		config.WarmMultiple = 1.5
	}
	return &VolumeSpike{config: config}
}

// Name returns the name of the indicator.
func (v *VolumeSpike) Name() string {
	return "volume spike"
}

// Score maps current volume relative to the average onto {0, 0.5, 1}.
// NaN input or a non-positive average (an all-quiet window) scores 0:
// absent volume data is never bullish.
func (v *VolumeSpike) Score(currentVolume, averageVolume float64) domain.SubScore {
	if math.IsNaN(currentVolume) || math.IsNaN(averageVolume) || averageVolume <= 0 {
		return domain.SubScore{Name: domain.ScoreVolumeSpike, Value: 0}
	}

	ratio := currentVolume / averageVolume
	score := 0.0
	switch {
	case ratio >= v.config.SpikeMultiple:
		score = 1.0
	case ratio >= v.config.WarmMultiple:
		score = 0.5
	}
	return domain.SubScore{Name: domain.ScoreVolumeSpike, Value: score, Raw: ratio}
}
