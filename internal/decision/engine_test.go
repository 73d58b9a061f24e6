package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngine_Decide(t *testing.T) {
	engine := New(DefaultConfig()) // 70 / 10 / 10% / 50% / 2

	tests := []struct {
		name          string
		totalScore    float64
		histScore     int
		priceIncrease float64
		wantBuy       bool
	}{
		{
			name:          "all conditions met",
			totalScore:    75,
			histScore:     10,
			priceIncrease: 15,
			wantBuy:       true,
		},
		{
			name:          "strong candidate at high score",
			totalScore:    92,
			histScore:     20,
			priceIncrease: 30,
			wantBuy:       true,
		},
		{
			name:          "composite below threshold",
			totalScore:    65,
			histScore:     10,
			priceIncrease: 15,
			wantBuy:       false,
		},
		{
			name:          "composite exactly at threshold is not enough",
			totalScore:    70,
			histScore:     10,
			priceIncrease: 15,
			wantBuy:       false,
		},
		{
			name:          "move past the anti-chasing guard",
			totalScore:    75,
			histScore:     10,
			priceIncrease: 60,
			wantBuy:       false,
		},
		{
			name:          "move exactly at the guard is rejected",
			totalScore:    75,
			histScore:     10,
			priceIncrease: 50,
			wantBuy:       false,
		},
		{
			// Only one confirming signal: the price move. No history.
			name:          "too few confirming signals",
			totalScore:    75,
			histScore:     0,
			priceIncrease: 15,
			wantBuy:       false,
		},
		{
			// Only one confirming signal: the history. Move too small.
			name:          "small move removes the price signal",
			totalScore:    75,
			histScore:     20,
			priceIncrease: 5,
			wantBuy:       false,
		},
		{
			name:          "negative move is never a signal",
			totalScore:    75,
			histScore:     20,
			priceIncrease: -10,
			wantBuy:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Decide(Input{
				Symbol:           "TESTUSDT",
				TotalScore:       tt.totalScore,
				HistoricalScore:  tt.histScore,
				PriceIncreasePct: tt.priceIncrease,
			})
			assert.Equal(t, tt.wantBuy, got.ShouldBuy)
			assert.Equal(t, "TESTUSDT", got.Symbol)
			assert.Equal(t, tt.totalScore, got.CompositeScore)
			assert.Equal(t, tt.histScore, got.HistoricalScore)
		})
	}
}

func TestEngine_Decide_CustomThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScoreThreshold = 50
	cfg.HistScoreThreshold = 20
	cfg.MinSignals = 1
	engine := New(cfg)

	t.Run("lower score bar admits weaker composites", func(t *testing.T) {
		got := engine.Decide(Input{TotalScore: 55, HistoricalScore: 20, PriceIncreasePct: 5})
		assert.True(t, got.ShouldBuy)
	})

	t.Run("raised history bar rejects mid-tier history", func(t *testing.T) {
		got := engine.Decide(Input{TotalScore: 55, HistoricalScore: 10, PriceIncreasePct: 5})
		assert.False(t, got.ShouldBuy)
	})
}

// Thresholds are taken as configured: a zero disables that gate condition
// instead of being swapped for the default.
func TestEngine_Decide_ZeroThresholdDisablesGate(t *testing.T) {
	t.Run("zero min signals admits a single-signal candidate", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MinSignals = 0
		got := New(cfg).Decide(Input{TotalScore: 75, HistoricalScore: 10, PriceIncreasePct: 5})
		assert.True(t, got.ShouldBuy)
	})

	t.Run("zero history threshold admits unproven symbols", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.HistScoreThreshold = 0
		cfg.MinSignals = 1
		got := New(cfg).Decide(Input{TotalScore: 75, HistoricalScore: 0, PriceIncreasePct: 15})
		assert.True(t, got.ShouldBuy)
	})
}
