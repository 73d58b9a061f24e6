package domain

import "time"

// Signal is a single externally observed post or mention of an asset.
// EngagementScore is a non-negative value computed by the originating
// collector (weighted likes/comments/shares); the core treats it as opaque.
type Signal struct {
	Source          string    // Collector that produced the signal (e.g., "reddit")
	Text            string    // Raw post text
	Timestamp       time.Time // Observation time of the post
	EngagementScore float64   // Collector-specific engagement metric, >= 0
}
