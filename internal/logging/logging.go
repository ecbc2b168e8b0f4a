// Package logging sets up the logrus logger.
// The terminal belongs to bubbletea, so everything goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// ParseLevel maps a config/flag value to a logrus level, defaulting to info
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "trace":
		return logrus.TraceLevel
	default:
		return logrus.InfoLevel
	}
}

// NewWithWriter builds a logger writing to w
func NewWithWriter(w io.Writer, level string) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(ParseLevel(level))
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: true,
	})
	l.SetOutput(w)
	return l
}

// New opens path for appending and returns a logger writing to it.
// The returned closer must be called on shutdown.
func New(path, level string) (*logrus.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file %s: %w", path, err)
	}
	return NewWithWriter(f, level), f, nil
}

// Discard returns a logger that drops everything, used when the log file cannot be opened
func Discard() *logrus.Logger {
	return NewWithWriter(io.Discard, "error")
}
