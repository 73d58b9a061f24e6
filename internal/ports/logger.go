package ports

import "context"

// Logger is the structured logging port. Call sites pass at most one fields
// map per entry; adapters exist for zerolog (json or console output) and the
// standard library log package.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...map[string]interface{})
	Info(ctx context.Context, msg string, fields ...map[string]interface{})
	Warn(ctx context.Context, msg string, fields ...map[string]interface{})
	// Error attaches err to the entry alongside the message and fields.
	Error(ctx context.Context, err error, msg string, fields ...map[string]interface{})
}
