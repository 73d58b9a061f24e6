package domain

import "time"

// TradeRecord represents a submitted trade as handed to the persistence
// collaborator. RealizedPnL is zero at entry time and filled in later by
// whatever closes the position.
type TradeRecord struct {
	ID          int64     // Unique identifier for the record (from DB)
	Symbol      string    // Trading symbol (e.g., "BTCUSDT")
	Side        OrderSide // BUY or SELL
	Amount      float64   // Executed base-asset quantity
	Price       float64   // Average fill price
	Timestamp   time.Time // Execution time
	RealizedPnL float64   // Realized profit and loss, if known
}
