package indicators

import (
	"fmt"

	"pumpScout/internal/domain"
)

// MovingAverageType defines the type of moving average.
type MovingAverageType string

const (
	// SimpleMovingAverage represents a simple moving average.
	SimpleMovingAverage MovingAverageType = "SMA"
	// ExponentialMovingAverage represents an exponential moving average.
	ExponentialMovingAverage MovingAverageType = "EMA"
)

// CrossoverConfig holds configuration for a short/long moving-average
// crossover indicator.
type CrossoverConfig struct {
	Type        MovingAverageType
	ShortPeriod int
	LongPeriod  int
}

// Crossover detects short-average crossings of the long average between the
// two most recent data points. The same logic serves the simple and
// exponential variants.
type Crossover struct {
	config CrossoverConfig
}

// NewCrossover creates a new moving-average crossover indicator instance.
func NewCrossover(config CrossoverConfig) (*Crossover, error) {
	if config.ShortPeriod <= 0 || config.LongPeriod <= 0 {
		return nil, fmt.Errorf("crossover periods must be positive (short=%d, long=%d)", config.ShortPeriod, config.LongPeriod)
	}
	if config.ShortPeriod >= config.LongPeriod {
		return nil, fmt.Errorf("crossover short period %d must be less than long period %d", config.ShortPeriod, config.LongPeriod)
	}
	switch config.Type {
	case SimpleMovingAverage, ExponentialMovingAverage:
	default:
		return nil, fmt.Errorf("unsupported moving average type: %s", config.Type)
	}
	return &Crossover{config: config}, nil
}

// Name returns the name of the indicator.
func (c *Crossover) Name() string {
	return string(c.config.Type) + " crossover"
}

// RequiredDataPoints returns the minimum number of klines needed to observe a
// cross between the last two points.
func (c *Crossover) RequiredDataPoints() int {
	return c.config.LongPeriod + 1
}

// Score returns 1.0 for a bullish cross (short crosses above long between the
// last two points), 0.0 for a bearish cross, and Neutral otherwise or when
// the series is too short.
func (c *Crossover) Score(klines []*domain.Kline) domain.SubScore {
	name := domain.ScoreSMACrossover
	if c.config.Type == ExponentialMovingAverage {
		name = domain.ScoreEMACrossover
	}

	if len(klines) < c.RequiredDataPoints() {
		return domain.SubScore{Name: name, Value: Neutral}
	}

	prevShort, prevLong := c.averages(klines[:len(klines)-1])
	curShort, curLong := c.averages(klines)

	score := Neutral
	switch {
	case prevShort < prevLong && curShort > curLong:
		score = 1.0 // Bullish cross
	case prevShort > prevLong && curShort < curLong:
		score = 0.0 // Bearish cross
	}
	return domain.SubScore{Name: name, Value: score, Raw: curShort - curLong}
}

func (c *Crossover) averages(klines []*domain.Kline) (short, long float64) {
	closes := domain.ClosePrices(klines)
	if c.config.Type == SimpleMovingAverage {
		return sma(closes, c.config.ShortPeriod), sma(closes, c.config.LongPeriod)
	}
	shortSeries := emaSeries(closes, c.config.ShortPeriod)
	longSeries := emaSeries(closes, c.config.LongPeriod)
	return shortSeries[len(shortSeries)-1], longSeries[len(longSeries)-1]
}

// sma computes the simple moving average over the trailing period values.
func sma(values []float64, period int) float64 {
	total := 0.0
	for i := len(values) - period; i < len(values); i++ {
		total += values[i]
	}
	return total / float64(period)
}
