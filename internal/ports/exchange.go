package ports

import (
	"context"
	"time"

	"pumpScout/internal/domain"
)

// Ticker holds the 24h rolling statistics for a symbol.
type Ticker struct {
	Symbol            string
	LastPrice         float64
	PriceChangePct24h float64
	Volume24h         float64
}

// OrderResult represents the essential details returned after placing an order.
type OrderResult struct {
	OrderID     int64     // Exchange's order ID
	Symbol      string    // Symbol for the order
	Side        string    // Order side (BUY, SELL)
	Status      string    // Order status (e.g., NEW, FILLED)
	ExecutedQty float64   // Quantity filled
	AvgPrice    float64   // Average fill price
	Timestamp   time.Time // Time the order response was generated
}

// MarketDataProvider supplies read-only market data. It may be shared across
// concurrent asset pipelines.
type MarketDataProvider interface {
	// GetKlines retrieves historical klines/candlestick data for the given symbol.
	GetKlines(ctx context.Context, symbol string, interval string, limit int) ([]*domain.Kline, error)

	// GetTicker retrieves the 24h rolling ticker for a given symbol.
	GetTicker(ctx context.Context, symbol string) (*Ticker, error)
}

// ExchangeClient defines the interface for interacting with the exchange.
// This abstraction allows decoupling the decision core from a specific venue.
type ExchangeClient interface {
	MarketDataProvider

	// SetServerTime synchronizes the client's clock offset with the server.
	// Called once per session before any timestamp-sensitive call.
	SetServerTime(ctx context.Context) error

	// GetServerTime retrieves the current server time from the exchange.
	GetServerTime(ctx context.Context) (time.Time, error)

	// Ping checks the connectivity to the exchange API.
	Ping(ctx context.Context) error

	// GetAccountBalance retrieves the free balance for a specific asset (e.g., "USDT").
	GetAccountBalance(ctx context.Context, asset string) (float64, error)

	// CountOpenPositions returns the number of currently open positions.
	CountOpenPositions(ctx context.Context) (int, error)

	// GetSymbolPrecision returns the base-asset quantity precision (number of
	// decimal places) accepted by the exchange for the symbol.
	GetSymbolPrecision(ctx context.Context, symbol string) (int, error)

	// PlaceMarketOrder places a market order for the given base-asset quantity.
	PlaceMarketOrder(ctx context.Context, symbol string, side domain.OrderSide, quantity string) (*OrderResult, error)
}
