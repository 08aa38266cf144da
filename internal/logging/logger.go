// Package logging builds the charmbracelet/log loggers used by the binaries.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LevelEnv names the environment variable that selects the log level.
const LevelEnv = "BOUNCE_LOG_LEVEL"

// New creates a logger writing to w at the named level.
// Unknown or empty level names fall back to info.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "bounce",
	})
}

// FromEnv creates a logger writing to w at the level named by BOUNCE_LOG_LEVEL.
func FromEnv(w io.Writer) *log.Logger {
	return New(w, os.Getenv(LevelEnv))
}

// ParseLevel maps DEBUG, INFO, WARN, ERROR (any case) to a log level, defaulting to info.
func ParseLevel(s string) log.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return log.DebugLevel
	case "WARN", "WARNING":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// OpenFile returns a writer for local-mode logs. An empty path discards
// output so log lines never land on the game screen. The returned closer
// must be called on exit.
func OpenFile(path string) (io.Writer, func() error, error) {
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
