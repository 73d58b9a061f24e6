package indicators

// Neutral is the sub-score returned whenever an indicator cannot be computed
// from the available data. Insufficient data is a defined value, not an error.
const Neutral = 0.5

// IndicatorConfig holds common configuration for indicators.
type IndicatorConfig struct {
	Period int
}

// BaseIndicator provides common functionality for indicators.
type BaseIndicator struct {
	Config IndicatorConfig
}

// RequiredDataPoints returns the minimum number of klines needed for calculation.
func (b *BaseIndicator) RequiredDataPoints() int {
	return b.Config.Period
}
