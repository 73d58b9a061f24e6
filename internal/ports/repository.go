package ports

import (
	"context"
	"time"

	"pumpScout/internal/domain"
)

// TradeRepository defines the interface for storing and retrieving trade records.
// Recording is fire-and-forget with respect to the decision pipeline: a failed
// write must not roll back or retry an already-submitted order.
type TradeRepository interface {
	// RecordTrade saves a new trade record and returns its assigned ID.
	RecordTrade(ctx context.Context, trade *domain.TradeRecord) (int64, error)
	// FindSince retrieves all trades executed at or after the cutoff time,
	// ordered by timestamp ascending.
	FindSince(ctx context.Context, cutoff time.Time) ([]*domain.TradeRecord, error)
}

// Notifier delivers human-readable messages out of band. Delivery is
// best-effort; failures are logged only.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
