package domain

// PositionSize is the outcome of position sizing for a BUY decision.
type PositionSize struct {
	Symbol             string
	TradeAmountUSD     float64 // Currency amount to allocate, >= the configured minimum
	AllocationFraction float64 // Fraction of the portfolio balance, <= max allocation
}
