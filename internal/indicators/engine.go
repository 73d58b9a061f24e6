// Package indicators computes the technical sub-scores of the composite:
// RSI, MACD, SMA/EMA crossover and volume spike, each normalized to [0,1].
// All calculations are pure; a series too short for an indicator yields that
// indicator's defined fallback value rather than an error.
package indicators

import (
	"fmt"

	"pumpScout/internal/domain"
)

// EngineConfig aggregates the per-indicator configuration.
type EngineConfig struct {
	RSIPeriod      int // default 14
	MACDShort      int // default 12
	MACDLong       int // default 26
	MACDSignal     int // default 9
	SMAShortPeriod int // default 20
	SMALongPeriod  int // default 50
	EMAShortPeriod int // default 12
	EMALongPeriod  int // default 26
	VolumeSpike    float64
	VolumeWarm     float64
}

// Engine bundles the technical indicators and produces their sub-scores for a
// kline series in one call.
type Engine struct {
	rsi    *RSI
	macd   *MACD
	sma    *Crossover
	ema    *Crossover
	volume *VolumeSpike
}

// NewEngine creates an indicator engine, applying the conventional defaults
// for any zero period.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.RSIPeriod == 0 {
		cfg.RSIPeriod = 14
	}
	if cfg.SMAShortPeriod == 0 {
		cfg.SMAShortPeriod = 20
	}
	if cfg.SMALongPeriod == 0 {
		cfg.SMALongPeriod = 50
	}
	if cfg.EMAShortPeriod == 0 {
		cfg.EMAShortPeriod = 12
	}
	if cfg.EMALongPeriod == 0 {
		cfg.EMALongPeriod = 26
	}

	sma, err := NewCrossover(CrossoverConfig{Type: SimpleMovingAverage, ShortPeriod: cfg.SMAShortPeriod, LongPeriod: cfg.SMALongPeriod})
	if err != nil {
		return nil, fmt.Errorf("SMA crossover: %w", err)
	}
	ema, err := NewCrossover(CrossoverConfig{Type: ExponentialMovingAverage, ShortPeriod: cfg.EMAShortPeriod, LongPeriod: cfg.EMALongPeriod})
	if err != nil {
		return nil, fmt.Errorf("EMA crossover: %w", err)
	}

	return &Engine{
		rsi:    NewRSI(RSIConfig{IndicatorConfig: IndicatorConfig{Period: cfg.RSIPeriod}}),
		macd:   NewMACD(MACDConfig{ShortPeriod: cfg.MACDShort, LongPeriod: cfg.MACDLong, SignalPeriod: cfg.MACDSignal}),
		sma:    sma,
		ema:    ema,
		volume: NewVolumeSpike(VolumeSpikeConfig{SpikeMultiple: cfg.VolumeSpike, WarmMultiple: cfg.VolumeWarm}),
	}, nil
}

// Scores computes all technical sub-scores for the series. currentVolume and
// averageVolume feed the volume-spike score; they are passed separately so
// the caller controls the averaging window.
func (e *Engine) Scores(klines []*domain.Kline, currentVolume, averageVolume float64) map[string]domain.SubScore {
	scores := make(map[string]domain.SubScore, 5)
	for _, s := range []domain.SubScore{
		e.rsi.Score(klines),
		e.macd.Score(klines),
		e.sma.Score(klines),
		e.ema.Score(klines),
		e.volume.Score(currentVolume, averageVolume),
	} {
		scores[s.Name] = s
	}
	return scores
}
