package domain

import "time"

// Kline represents a single candlestick data point.
type Kline struct {
	OpenTime  time.Time // Start time of the interval
	CloseTime time.Time // End time of the interval
	Symbol    string    // Trading symbol
	Interval  string    // Kline interval (e.g., "1m", "1h")
	Open      float64   // Opening price
	High      float64   // Highest price
	Low       float64   // Lowest price
	Close     float64   // Closing price
	Volume    float64   // Trading volume
}

// ClosePrices extracts the closing prices of a kline series in order.
func ClosePrices(klines []*Kline) []float64 {
	closes := make([]float64, len(klines))
	for i, k := range klines {
		closes[i] = k.Close
	}
	return closes
}
