package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Fatalf("parse %q: expected %s, got %s", input, want, got)
		}
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lazymemo.log")
	logger, closer, err := New(path, "info", false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Debug().Msg("hidden")
	logger.Info().Str("task_id", "1").Msg("task created")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `"message":"task created"`) || !strings.Contains(content, `"task_id":"1"`) {
		t.Fatalf("expected info entry in log, got %q", content)
	}
	if strings.Contains(content, "hidden") {
		t.Fatalf("expected debug entry to be filtered, got %q", content)
	}
}
