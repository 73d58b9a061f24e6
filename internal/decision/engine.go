// Package decision implements the gate that converts a composite score and
// auxiliary signals into a binary trade decision. The gate is stateless:
// every cycle computes a fresh decision from its inputs alone.
package decision

import "pumpScout/internal/domain"

// Config holds the gate thresholds. Values are taken verbatim: a zero
// threshold disables that condition rather than falling back to a default,
// so operators can config-disable individual gates. Use DefaultConfig for
// the conventional thresholds.
type Config struct {
	ScoreThreshold     float64 // Composite total must exceed this
	HistScoreThreshold int     // Historical score must reach this
	PriceSignalPct     float64 // Price increase counting as a confirming signal
	MaxPriceIncrease   float64 // Anti-chasing guard: reject moves beyond this
	MinSignals         int     // Confirming signals required
}

// DefaultConfig returns the conventional gate thresholds.
func DefaultConfig() Config {
	return Config{
		ScoreThreshold:     70,
		HistScoreThreshold: 10,
		PriceSignalPct:     10,
		MaxPriceIncrease:   50,
		MinSignals:         2,
	}
}

// Engine applies the decision gate.
type Engine struct {
	config Config
}

// New creates a decision engine with the given thresholds, as configured.
func New(config Config) *Engine {
	return &Engine{config: config}
}

// Input carries the gate inputs. Fields are named so that the historical and
// total scores cannot be transposed at a call site.
type Input struct {
	Symbol           string
	TotalScore       float64 // Composite total in [0,100]
	HistoricalScore  int     // Historical pump score, one of {0,10,20}
	PriceIncreasePct float64 // Move since the triggering signal's observation
}

// Decide evaluates the gate. BUY requires the composite total above the score
// threshold, at least MinSignals confirming signals, a historical score at or
// above its threshold, and a move still below the anti-chasing guard.
func (e *Engine) Decide(in Input) *domain.TradeDecision {
	signals := 0
	if in.PriceIncreasePct > e.config.PriceSignalPct {
		signals++
	}
	if in.HistoricalScore > 0 {
		signals++
	}

	shouldBuy := in.TotalScore > e.config.ScoreThreshold &&
		signals >= e.config.MinSignals &&
		in.PriceIncreasePct < e.config.MaxPriceIncrease &&
		in.HistoricalScore >= e.config.HistScoreThreshold

	return &domain.TradeDecision{
		Symbol:           in.Symbol,
		CompositeScore:   in.TotalScore,
		HistoricalScore:  in.HistoricalScore,
		PriceIncreasePct: in.PriceIncreasePct,
		ShouldBuy:        shouldBuy,
	}
}
