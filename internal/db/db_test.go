package db

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenMigratesFileJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	for i := 0; i < 2; i++ {
		conn, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}

		var version int
		if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
			t.Fatalf("read version: %v", err)
		}
		if version != len(journalMigrations) {
			t.Fatalf("expected version %d, got %d", len(journalMigrations), version)
		}

		var mode string
		if err := conn.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
			t.Fatalf("read journal mode: %v", err)
		}
		if !strings.EqualFold(mode, "wal") {
			t.Fatalf("expected wal journal mode, got %q", mode)
		}

		var index string
		err = conn.QueryRow("SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_history_created_at'").Scan(&index)
		if err != nil {
			t.Fatalf("expected created_at index: %v", err)
		}
		_ = conn.Close()
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
