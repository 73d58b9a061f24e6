package notifier

import (
	"context"

	"pumpScout/internal/ports"
)

// Noop is a notifier that only logs. Used when Telegram is not configured
// and in dry-run mode.
type Noop struct {
	logger ports.Logger
}

// NewNoop creates a log-only notifier.
func NewNoop(logger ports.Logger) *Noop {
	return &Noop{logger: logger}
}

// Notify logs the message at Info level and reports success.
func (n *Noop) Notify(ctx context.Context, message string) error {
	if n.logger != nil {
		n.logger.Info(ctx, "Notification", map[string]interface{}{"message": message})
	}
	return nil
}
