// Package risk converts a confirmed trade decision into a bounded order size
// under portfolio-diversification constraints.
package risk

import (
	"fmt"
	"math"

	"pumpScout/internal/domain"
	"pumpScout/internal/ports"
)

// SizerConfig holds configuration for position sizing.
type SizerConfig struct {
	MaxAllocation    float64 // Ceiling on the per-trade portfolio fraction (default 0.05)
	MinTradeAmount   float64 // Floor in currency units to avoid meaningless orders (default 10)
	HighTierFraction float64 // Base allocation when historical confidence is high (default 0.02)
	MidTierFraction  float64 // Base allocation at the middle tier (default 0.01)
	LowTierFraction  float64 // Base allocation otherwise (default 0.005)
}

// Sizer computes risk-adjusted trade amounts.
type Sizer struct {
	config SizerConfig
}

// NewSizer creates a position sizer, applying defaults for zero fields.
func NewSizer(config SizerConfig) *Sizer {
	if config.MaxAllocation == 0 {
		config.MaxAllocation = 0.05
	}
	if config.MinTradeAmount == 0 {
		config.MinTradeAmount = 10.0
	}
	if config.HighTierFraction == 0 {
		config.HighTierFraction = 0.02
	}
	if config.MidTierFraction == 0 {
		config.MidTierFraction = 0.01
	}
	if config.LowTierFraction == 0 {
		config.LowTierFraction = 0.005
	}
	return &Sizer{config: config}
}

// Input carries the sizing inputs for one asset.
type Input struct {
	Symbol            string
	HistoricalScore   int     // Historical pump score, one of {0,10,20}
	TotalScore        float64 // Composite total in [0,100]
	PortfolioBalance  float64 // Portfolio value in currency units
	OpenPositionCount int     // Number of currently open positions
}

// Size computes the trade amount: a base allocation from the historical
// confidence tier, scaled slightly by the composite score, shrunk by the
// diversification factor 1/(openPositions+1), capped at MaxAllocation, with
// the resulting amount floored at MinTradeAmount. An invalid balance or
// position count is an invariant violation.
func (s *Sizer) Size(in Input) (*domain.PositionSize, error) {
	if math.IsNaN(in.PortfolioBalance) || math.IsInf(in.PortfolioBalance, 0) || in.PortfolioBalance < 0 {
		return nil, fmt.Errorf("%w: portfolio balance %f is not a usable amount", ports.ErrInvariantViolation, in.PortfolioBalance)
	}
	if in.OpenPositionCount < 0 {
		return nil, fmt.Errorf("%w: open position count %d is negative", ports.ErrInvariantViolation, in.OpenPositionCount)
	}

	// Base allocation by historical-confidence tier.
	base := s.config.LowTierFraction
	switch {
	case in.HistoricalScore >= 20:
		base = s.config.HighTierFraction
	case in.HistoricalScore == 10:
		base = s.config.MidTierFraction
	}

	// Higher composite scores nudge the allocation up.
	multiplier := 1.0
	switch {
	case in.TotalScore > 90:
		multiplier = 1.2
	case in.TotalScore > 80:
		multiplier = 1.1
	}

	diversification := 1.0 / float64(in.OpenPositionCount+1)

	allocation := base * multiplier * diversification
	if allocation > s.config.MaxAllocation {
		allocation = s.config.MaxAllocation
	}

	amount := in.PortfolioBalance * allocation
	if amount < s.config.MinTradeAmount {
		amount = s.config.MinTradeAmount
	}

	return &domain.PositionSize{
		Symbol:             in.Symbol,
		TradeAmountUSD:     amount,
		AllocationFraction: allocation,
	}, nil
}
