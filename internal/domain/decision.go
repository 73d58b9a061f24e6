package domain

// TradeDecision is the outcome of the decision gate for one asset in one
// evaluation cycle. It is derived purely from the composite score and the
// auxiliary price/history facts; there is no hidden state.
type TradeDecision struct {
	Symbol           string
	CompositeScore   float64 // Composite total in [0,100]
	HistoricalScore  int     // Historical pump score, one of {0,10,20}
	PriceIncreasePct float64 // Percentage move since the triggering signal
	ShouldBuy        bool
}
