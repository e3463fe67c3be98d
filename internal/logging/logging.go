// Package logging builds the zerolog logger used across lazymemo.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Joseda-hg/lazymemo/internal/config"
)

// ParseLevel converts a config level name to a zerolog level, defaulting to info.
func ParseLevel(value string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New returns a logger writing JSON lines to path. The terminal belongs to the
// TUI, so an empty path discards output unless console is set.
func New(path, level string, console bool) (zerolog.Logger, io.Closer, error) {
	var output io.Writer = io.Discard
	var closer io.Closer = nopCloser{}

	if path != "" {
		if err := config.EnsureDir(path); err != nil {
			return zerolog.Nop(), nil, err
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		output = file
		closer = file
	}

	if console {
		consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		if path != "" {
			output = zerolog.MultiLevelWriter(output, consoleWriter)
		} else {
			output = consoleWriter
		}
	}

	logger := zerolog.New(output).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
