// Package analytics summarizes recorded trades for periodic reporting.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"pumpScout/internal/domain"
)

// Summary holds aggregate metrics for a set of trade records.
type Summary struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64
	TotalPnL      float64
	TotalNotional float64
}

// Summarize computes aggregate metrics over the trades. Trades with zero
// realized PnL (still-open entries) count toward totals but not win/loss.
func Summarize(trades []*domain.TradeRecord) Summary {
	var s Summary
	s.TotalTrades = len(trades)
	for _, t := range trades {
		s.TotalPnL += t.RealizedPnL
		s.TotalNotional += t.Amount * t.Price
		if t.RealizedPnL > 0 {
			s.WinningTrades++
		} else if t.RealizedPnL < 0 {
			s.LosingTrades++
		}
	}
	if decided := s.WinningTrades + s.LosingTrades; decided > 0 {
		s.WinRate = float64(s.WinningTrades) / float64(decided)
	}
	return s
}

// FormatReport renders a human-readable trade summary for the period, in
// chronological order, suitable for notification delivery.
func FormatReport(trades []*domain.TradeRecord, window time.Duration) string {
	sorted := make([]*domain.TradeRecord, len(trades))
	copy(sorted, trades)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	s := Summarize(sorted)

	var b strings.Builder
	fmt.Fprintf(&b, "Trade summary for last %s\n", window)
	b.WriteString(strings.Repeat("-", 40) + "\n")

	if s.TotalTrades == 0 {
		b.WriteString("No trades found in this period.\n")
		return b.String()
	}

	for _, t := range sorted {
		fmt.Fprintf(&b, "%s | %s | %s | amount: %g | price: %g | pnl: %.2f\n",
			t.Timestamp.Format(time.RFC3339), t.Symbol, t.Side, t.Amount, t.Price, t.RealizedPnL)
	}
	b.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&b, "Total trades: %d\n", s.TotalTrades)
	fmt.Fprintf(&b, "Win rate: %.0f%%\n", s.WinRate*100)
	fmt.Fprintf(&b, "Total PnL: %.2f\n", s.TotalPnL)
	return b.String()
}
