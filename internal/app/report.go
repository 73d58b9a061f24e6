package app

import (
	"context"
	"fmt"
	"time"

	"pumpScout/internal/analytics"
)

// SendTradeReport summarizes the trades recorded within the trailing window
// and delivers the report through the notifier.
func (o *Orchestrator) SendTradeReport(ctx context.Context, window time.Duration) error {
	cutoff := time.Now().UTC().Add(-window)
	trades, err := o.tradeRepo.FindSince(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("load trades since %s: %w", cutoff.Format(time.RFC3339), err)
	}

	report := analytics.FormatReport(trades, window)
	o.logger.Info(ctx, "Trade report generated", map[string]interface{}{
		"window": window.String(),
		"trades": len(trades),
	})
	return o.notifier.Notify(ctx, report)
}
