package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// journalMigrations run in order; PRAGMA user_version records how many have
// been applied. The first entry is the embedded schema.
var journalMigrations = []func() (string, error){
	func() (string, error) {
		data, err := schemaFS.ReadFile("schema.sql")
		return string(data), err
	},
	func() (string, error) {
		return "CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at);", nil
	},
}

// Open opens the activity journal at path and brings its schema up to date.
// File-backed journals use WAL with a busy timeout so the TUI and a CLI
// subcommand can write at the same time.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("db path is required")
	}

	db, err := sql.Open("sqlite", dataSourceName(path))
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// each pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := migrate(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func dataSourceName(path string) string {
	if path == ":memory:" {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func migrate(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read journal version: %w", err)
	}

	for i := version; i < len(journalMigrations); i++ {
		stmt, err := journalMigrations[i]()
		if err != nil {
			return fmt.Errorf("load journal migration %d: %w", i+1, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply journal migration %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("set journal version %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}
