// Package logging provides structured logging configuration using zerolog.
// Components log through the global logger, so Setup must run before
// clients are created for its output settings to apply everywhere.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger and returns it. A nil Output
// writes to os.Stderr.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// ForFetch creates a component logger scoped to one category and identifier.
func ForFetch(component, category, identifier string) zerolog.Logger {
	return log.With().
		Str("component", component).
		Str("category", category).
		Str("identifier", identifier).
		Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Cache hits and misses (category, identifier, items)
//   - Per-page fetch flow (page, cursor, next_cursor)
//   - Upstream request start and completion
//
// Info: Normal operation events
//   - Completed list fetches (pages, items, duration)
//   - Fetched account info
//   - Server startup/shutdown
//
// Warn: Warning conditions
//   - Upstream transport failures and non-2xx statuses
//   - Upstream "fail" status and malformed bodies
//   - Aborted streams
//
// Error: Error conditions requiring attention
//   - Cache backend unavailable
//   - Corrupt cache entries
//   - Configuration errors
//
// Context Fields:
//   - component: emitting package (cache, pagination, instagram-client, ...)
//   - category: account_info, posts, followers, comments, likes
//   - identifier: handle or media id
//   - endpoint: upstream path
//   - status_code: HTTP status code
//   - duration: request or fetch duration
//   - error_class: error classification (client, server, network, timeout, decoding, fail_status)
//   - page, cursor, items: pagination progress
