package ports

import (
	"context"

	"pumpScout/internal/domain"
)

// SignalCollector gathers social signals mentioning any of the keywords from
// one or more sources. Implementations may fail per source; a partial or empty
// result is valid input for the pipeline, never an error condition by itself.
type SignalCollector interface {
	// Name identifies the collector (used in logs and Signal.Source).
	Name() string

	// Collect returns the signals observed for the given keywords.
	Collect(ctx context.Context, keywords []string) ([]domain.Signal, error)
}

// SentimentScorer produces an opaque sentiment value in [0,1] for a piece of
// text. The scoring model itself is an external concern.
type SentimentScorer interface {
	Score(ctx context.Context, text string) (float64, error)
}
