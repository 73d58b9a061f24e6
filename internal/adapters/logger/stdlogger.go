package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
)

// StdLogger writes line-oriented logs through the standard library log
// package. It is the fallback backend for environments where structured
// output is not wanted (LOG_FORMAT=std).
type StdLogger struct {
	out   *log.Logger
	level LogLevel
}

// NewStdLogger creates a std logger writing to os.Stderr.
func NewStdLogger(level LogLevel) *StdLogger {
	return newStdLogger(os.Stderr, level)
}

func newStdLogger(w io.Writer, level LogLevel) *StdLogger {
	return &StdLogger{
		out:   log.New(w, "", log.LstdFlags|log.Lmicroseconds),
		level: level,
	}
}

func (l *StdLogger) write(level LogLevel, msg string, err error, fields []map[string]interface{}) {
	if level < l.level {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", level, msg)
	if err != nil {
		fmt.Fprintf(&sb, " | error: %v", err)
	}
	if len(fields) > 0 && len(fields[0]) > 0 {
		// Sorted keys keep the line stable across runs.
		keys := make([]string, 0, len(fields[0]))
		for k := range fields[0] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" |")
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%v", k, fields[0][k])
		}
	}
	l.out.Println(sb.String())
}

func (l *StdLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	l.write(LevelDebug, msg, nil, fields)
}

func (l *StdLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	l.write(LevelInfo, msg, nil, fields)
}

func (l *StdLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	l.write(LevelWarn, msg, nil, fields)
}

func (l *StdLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	l.write(LevelError, msg, err, fields)
}
