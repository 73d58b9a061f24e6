package binanceclient

import (
	"testing"

	"github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/assert"
)

func TestStepSizePrecision(t *testing.T) {
	tests := []struct {
		step string
		want int
	}{
		{step: "0.00100000", want: 3},
		{step: "0.10000000", want: 1},
		{step: "1.00000000", want: 0},
		{step: "0.00000100", want: 6},
		{step: "10", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.step, func(t *testing.T) {
			assert.Equal(t, tt.want, stepSizePrecision(tt.step))
		})
	}
}

func TestTranslateKline(t *testing.T) {
	t.Run("valid kline", func(t *testing.T) {
		dk, err := translateKline(&binance.Kline{
			OpenTime:  1714521600000,
			CloseTime: 1714525199999,
			Open:      "0.085",
			High:      "0.090",
			Low:       "0.084",
			Close:     "0.089",
			Volume:    "1250000",
		}, "DOGEUSDT", "1h")

		assert.NoError(t, err)
		assert.Equal(t, "DOGEUSDT", dk.Symbol)
		assert.Equal(t, "1h", dk.Interval)
		assert.InDelta(t, 0.085, dk.Open, 1e-12)
		assert.InDelta(t, 0.089, dk.Close, 1e-12)
		assert.InDelta(t, 1250000.0, dk.Volume, 1e-6)
	})

	t.Run("unparseable price is an error", func(t *testing.T) {
		_, err := translateKline(&binance.Kline{Open: "garbage"}, "DOGEUSDT", "1h")
		assert.Error(t, err)
	})

	t.Run("nil kline is an error", func(t *testing.T) {
		_, err := translateKline(nil, "DOGEUSDT", "1h")
		assert.Error(t, err)
	})
}

func TestTranslateOrderResponse(t *testing.T) {
	t.Run("average price derived from cumulative quote", func(t *testing.T) {
		result := translateOrderResponse(&binance.CreateOrderResponse{
			OrderID:                  42,
			Symbol:                   "DOGEUSDT",
			Side:                     binance.SideTypeBuy,
			Status:                   binance.OrderStatusTypeFilled,
			ExecutedQuantity:         "1000",
			CummulativeQuoteQuantity: "85.5",
			TransactTime:             1714521600000,
		})

		assert.Equal(t, int64(42), result.OrderID)
		assert.InDelta(t, 1000.0, result.ExecutedQty, 1e-9)
		assert.InDelta(t, 0.0855, result.AvgPrice, 1e-12)
	})

	t.Run("zero fills leave the price at zero", func(t *testing.T) {
		result := translateOrderResponse(&binance.CreateOrderResponse{
			ExecutedQuantity:         "0",
			CummulativeQuoteQuantity: "0",
		})
		assert.Zero(t, result.AvgPrice)
	})
}
