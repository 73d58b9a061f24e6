package logger

import (
	"strings"

	"github.com/rs/zerolog"
)

// LogLevel is the verbosity threshold shared by the std and zerolog backends.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the level name in upper case, e.g. "DEBUG".
func (l LogLevel) String() string {
	return strings.ToUpper(toZerologLevel(l).String())
}

// ParseLevel maps a config string onto a LogLevel. Spellings follow
// zerolog's (case-insensitive, plus "warning"); anything unrecognized
// falls back to info.
func ParseLevel(levelStr string) LogLevel {
	s := strings.ToLower(strings.TrimSpace(levelStr))
	if s == "warning" {
		return LevelWarn
	}
	zl, err := zerolog.ParseLevel(s)
	if err != nil {
		return LevelInfo
	}
	switch zl {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return LevelDebug
	case zerolog.WarnLevel:
		return LevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return LevelError
	default:
		return LevelInfo
	}
}

func toZerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
