package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevelEnv overrides the configured log level when set.
const LogLevelEnv = "STATICFILES_LOG_LEVEL"

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevels = map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}

// ParseLogLevel case-folds raw and maps it to a LogLevel.
func ParseLogLevel(raw string) (LogLevel, error) {
	if lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return lvl, nil
	}
	return "", fmt.Errorf("unknown log level %q", raw)
}

// Slog converts the level to its slog equivalent.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// ParseLogFormat case-folds raw and maps it to a LogFormat.
func ParseLogFormat(raw string) (LogFormat, error) {
	switch LogFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case LogFormatJSON:
		return LogFormatJSON, nil
	case LogFormatText:
		return LogFormatText, nil
	}
	return "", fmt.Errorf("unknown log format %q", raw)
}

// EffectiveLogLevel resolves the level in precedence order: verbose flag,
// STATICFILES_LOG_LEVEL, configured level. Unknown env values are ignored.
func (c *Config) EffectiveLogLevel(verbose bool, lookup func(string) (string, bool)) LogLevel {
	if verbose {
		return LogLevelDebug
	}
	if lookup != nil {
		if raw, ok := lookup(LogLevelEnv); ok {
			if lvl, err := ParseLogLevel(raw); err == nil {
				return lvl
			}
		}
	}
	if c.LogLevel == "" {
		return LogLevelInfo
	}
	return c.LogLevel
}

// NewLogger builds a slog logger writing to w (stderr when nil).
func NewLogger(w io.Writer, level LogLevel, format LogFormat) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level.Slog()}
	if format == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
