package indicators

import (
	"fmt"

	"pumpScout/internal/domain"
)

// MACDConfig holds configuration for the MACD indicator.
type MACDConfig struct {
	ShortPeriod  int // Fast EMA period (default 12)
	LongPeriod   int // Slow EMA period (default 26)
	SignalPeriod int // Signal-line EMA period (default 9)
}

// MACD implements the Moving Average Convergence Divergence indicator.
// It exposes the histogram (MACD line minus its signal line).
type MACD struct {
	config MACDConfig
}

// NewMACD creates a new MACD indicator instance with 12/26/9 defaults.
func NewMACD(config MACDConfig) *MACD {
	if config.ShortPeriod == 0 {
		config.ShortPeriod = 12
	}
	if config.LongPeriod == 0 {
		config.LongPeriod = 26
	}
	if config.SignalPeriod == 0 {
		config.SignalPeriod = 9
	}
	return &MACD{config: config}
}

// Name returns the name of the indicator.
func (m *MACD) Name() string {
	return "MACD"
}

// RequiredDataPoints returns the minimum number of klines needed for calculation.
func (m *MACD) RequiredDataPoints() int {
	return m.config.LongPeriod + m.config.SignalPeriod
}

// Calculate computes the latest MACD histogram value.
func (m *MACD) Calculate(klines []*domain.Kline) (float64, error) {
	if len(klines) < m.RequiredDataPoints() {
		return 0, fmt.Errorf("not enough data (%d) to calculate MACD for periods %d/%d/%d",
			len(klines), m.config.ShortPeriod, m.config.LongPeriod, m.config.SignalPeriod)
	}

	closes := domain.ClosePrices(klines)
	fast := emaSeries(closes, m.config.ShortPeriod)
	slow := emaSeries(closes, m.config.LongPeriod)

	// MACD line exists where the slow EMA is defined.
	macdLine := make([]float64, 0, len(closes)-m.config.LongPeriod+1)
	for i := m.config.LongPeriod - 1; i < len(closes); i++ {
		macdLine = append(macdLine, fast[i]-slow[i])
	}

	signal := emaSeries(macdLine, m.config.SignalPeriod)
	last := len(macdLine) - 1
	return macdLine[last] - signal[last], nil
}

// Score maps the latest histogram value onto a [0,1] sub-score: positive
// momentum scores 1.0, non-positive 0. A series too short scores Neutral.
func (m *MACD) Score(klines []*domain.Kline) domain.SubScore {
	hist, err := m.Calculate(klines)
	if err != nil {
		return domain.SubScore{Name: domain.ScoreMACD, Value: Neutral}
	}

	score := 0.0
	if hist > 0 {
		score = 1.0
	}
	return domain.SubScore{Name: domain.ScoreMACD, Value: score, Raw: hist}
}

// emaSeries computes an EMA over values. Positions before the first full
// period are seeded with the value itself so indexes line up with the input.
func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	multiplier := 2.0 / float64(period+1)
	if len(values) < period {
		copy(out, values)
		return out
	}

	// Seed with the SMA of the first period.
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
		out[i] = values[i]
	}
	ema := sum / float64(period)
	out[period-1] = ema

	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*multiplier + ema
		out[i] = ema
	}
	return out
}
