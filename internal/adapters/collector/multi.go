package collector

import (
	"context"
	"fmt"

	"pumpScout/internal/domain"
	"pumpScout/internal/ports"
)

// Multi fans a collection request out to several underlying collectors and
// merges the results. A failing source is logged and skipped; the merged
// result is an error only when every source fails.
type Multi struct {
	collectors []ports.SignalCollector
	logger     ports.Logger
}

// NewMulti creates a fan-out collector over the given sources.
func NewMulti(logger ports.Logger, collectors ...ports.SignalCollector) (*Multi, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for multi collector")
	}
	if len(collectors) == 0 {
		return nil, fmt.Errorf("at least one collector is required: %w", ports.ErrConfigurationError)
	}
	return &Multi{collectors: collectors, logger: logger}, nil
}

// Name identifies this collector in logs.
func (m *Multi) Name() string { return "multi" }

// Collect gathers signals from every source sequentially. Sources are cheap
// HTTP calls and already bounded by the caller's context, so there is no need
// for per-source goroutines here.
func (m *Multi) Collect(ctx context.Context, keywords []string) ([]domain.Signal, error) {
	var merged []domain.Signal
	failures := 0

	for _, c := range m.collectors {
		signals, err := c.Collect(ctx, keywords)
		if err != nil {
			failures++
			m.logger.Warn(ctx, "Signal source failed, continuing with remaining sources", map[string]interface{}{
				"source": c.Name(),
				"error":  err.Error(),
			})
			continue
		}
		merged = append(merged, signals...)
	}

	if failures == len(m.collectors) {
		return nil, fmt.Errorf("all %d signal sources failed: %w", failures, ports.ErrCollectorUnavailable)
	}
	return merged, nil
}
