package ports

import "errors"

// Standard application-level errors.
// Adapters should wrap underlying infrastructure errors with these standard errors.
var (
	// General Errors
	ErrUnknown            = errors.New("unknown error occurred")
	ErrInvalidRequest     = errors.New("invalid request parameters or format")
	ErrNotFound           = errors.New("resource not found")
	ErrTimeout            = errors.New("operation timed out")
	ErrContextCanceled    = errors.New("operation canceled via context")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// ErrInvariantViolation marks inputs that break a pipeline invariant
	// (e.g., a weight table not summing to 1.0, a non-numeric balance).
	// These are fatal for the affected asset's cycle and are never coerced.
	ErrInvariantViolation = errors.New("pipeline invariant violated")

	// Exchange Specific Errors
	ErrExchangeUnavailable  = errors.New("exchange API is unavailable")
	ErrConnectionFailed     = errors.New("failed to connect to the exchange")
	ErrRateLimited          = errors.New("API rate limit exceeded")
	ErrAuthenticationFailed = errors.New("exchange authentication failed (check API keys)")
	ErrInvalidAPIKeys       = errors.New("invalid API keys or permissions")
	ErrInsufficientFunds    = errors.New("insufficient funds for operation")
	ErrOrderPlacementFailed = errors.New("failed to place order")

	// Collector Specific Errors
	ErrCollectorUnavailable = errors.New("signal source is unavailable")

	// Database Specific Errors
	ErrDBConnection = errors.New("database connection error")
	ErrQueryFailed  = errors.New("database query failed")
)
