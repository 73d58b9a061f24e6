package config

import (
	"testing"

	"pumpScout/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DRY_RUN", "true") // No API keys needed

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"DOGEUSDT"}, cfg.Symbols)
	assert.Equal(t, "USDT", cfg.QuoteAsset)
	assert.Equal(t, []string{"DOGE"}, cfg.Keywords, "keywords default to the base assets")
	assert.Equal(t, "1h", cfg.KlineInterval)
	assert.Equal(t, 1000, cfg.KlineLimit)
	assert.InDelta(t, 70.0, cfg.ScoreThreshold, 1e-9)
	assert.InDelta(t, 10.0, cfg.PriceSignalPct, 1e-9)
	assert.InDelta(t, 0.05, cfg.MaxAllocation, 1e-9)
	assert.NoError(t, cfg.Weights.Validate())
	assert.True(t, cfg.IsTestnet, "testnet must be the safe default")
}

func TestLoadConfig_RequiresKeysForTrading(t *testing.T) {
	t.Setenv("DRY_RUN", "false")
	t.Setenv("BINANCE_API_KEY", "")
	t.Setenv("BINANCE_API_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BINANCE_API_KEY")
}

func TestLoadConfig_SymbolList(t *testing.T) {
	t.Setenv("DRY_RUN", "true")
	t.Setenv("SYMBOLS", "DOGEUSDT, SHIBUSDT ,PEPEUSDT")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"DOGEUSDT", "SHIBUSDT", "PEPEUSDT"}, cfg.Symbols)
	assert.Equal(t, []string{"DOGE", "SHIB", "PEPE"}, cfg.Keywords)
}

func TestLoadConfig_WeightsOverride(t *testing.T) {
	t.Setenv("DRY_RUN", "true")

	t.Run("full valid table is accepted", func(t *testing.T) {
		t.Setenv("SCORE_WEIGHTS",
			"rsi_score=0.2,macd_score=0.2,sma_crossover_score=0.1,ema_crossover_score=0.1,volume_spike_score=0.1,sentiment_score=0.2,historical_score=0.1")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.InDelta(t, 0.2, cfg.Weights[domain.ScoreRSI], 1e-9)
		assert.NoError(t, cfg.Weights.Validate())
	})

	t.Run("partial table not summing to one is rejected", func(t *testing.T) {
		t.Setenv("SCORE_WEIGHTS", "rsi_score=0.2,sentiment_score=0.2")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SCORE_WEIGHTS")
	})

	t.Run("malformed entry is rejected", func(t *testing.T) {
		t.Setenv("SCORE_WEIGHTS", "rsi_score:0.2")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SCORE_WEIGHTS")
	})

	t.Run("misspelled names are rejected even when they sum to one", func(t *testing.T) {
		t.Setenv("SCORE_WEIGHTS", "rsi=0.5,sentiment=0.5")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown sub-score")
	})
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "sentiment threshold above one", key: "SENTIMENT_THRESHOLD", value: "1.5"},
		{name: "score threshold out of range", key: "SCORE_THRESHOLD", value: "150"},
		{name: "max allocation at one", key: "MAX_ALLOCATION", value: "1.0"},
		{name: "non-positive min trade", key: "MIN_TRADE_AMOUNT", value: "0"},
		{name: "telegram chat without token", key: "TELEGRAM_CHAT_ID", value: "12345"},
		{name: "unknown log format", key: "LOG_FORMAT", value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DRY_RUN", "true")
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
