package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"fatal", LevelError},
		{"nonsense", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "input %q", tt.in)
	}
}

func TestStdLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newStdLogger(&buf, LevelWarn)
	ctx := context.Background()

	l.Debug(ctx, "dropped")
	l.Info(ctx, "dropped too")
	l.Warn(ctx, "kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "[WARN] kept")
}

func TestStdLogger_FieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := newStdLogger(&buf, LevelDebug)

	l.Error(context.Background(), errors.New("boom"), "order rejected",
		map[string]interface{}{"symbol": "DOGEUSDT", "attempt": 1})

	out := buf.String()
	assert.Contains(t, out, "[ERROR] order rejected")
	assert.Contains(t, out, "error: boom")
	// Keys come out sorted, so the line is deterministic.
	assert.Contains(t, out, "attempt=1 symbol=DOGEUSDT")
}
