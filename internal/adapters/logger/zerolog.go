package logger

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements the ports.Logger interface using zerolog.
// It produces structured JSON by default, or a human-friendly console
// format when console is requested.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerolog creates a zerolog-backed logger. format is "json" or "console".
func NewZerolog(level LogLevel, format string) *ZerologLogger {
	var zl zerolog.Logger
	if format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		zl = zerolog.New(output).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	zl = zl.Level(toZerologLevel(level))
	return &ZerologLogger{logger: zl}
}

func withFields(ev *zerolog.Event, fields ...map[string]interface{}) *zerolog.Event {
	if len(fields) > 0 && fields[0] != nil {
		ev = ev.Fields(fields[0])
	}
	return ev
}

// Debug logs a message at Debug level.
func (l *ZerologLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	withFields(l.logger.Debug(), fields...).Msg(msg)
}

// Info logs a message at Info level.
func (l *ZerologLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	withFields(l.logger.Info(), fields...).Msg(msg)
}

// Warn logs a message at Warning level.
func (l *ZerologLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	withFields(l.logger.Warn(), fields...).Msg(msg)
}

// Error logs an error message at Error level.
func (l *ZerologLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	withFields(l.logger.Error().Err(err), fields...).Msg(msg)
}
