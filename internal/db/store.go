package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Joseda-hg/lazymemo/internal/model"
)

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// Store is the local activity journal. It records what the client did to
// remote tasks; it is never used as a source of tasks.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) RecordCreated(ctx context.Context, task model.Task) error {
	return s.record(ctx, task.ID, EventCreated, formatCreatedDetails(task))
}

func (s *Store) RecordUpdated(ctx context.Context, before, after model.Task) error {
	return s.record(ctx, after.ID, EventUpdated, formatTaskDiff(before, after))
}

func (s *Store) RecordDeleted(ctx context.Context, task model.Task) error {
	return s.record(ctx, task.ID, EventDeleted, formatDeletedDetails(task))
}

func (s *Store) record(ctx context.Context, taskID model.ID, eventType, details string) error {
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO history (task_id, event_type, details, created_at) VALUES (?, ?, ?, ?)",
		taskID.String(), eventType, details, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record %s history: %w", eventType, err)
	}
	return nil
}

func (s *Store) ListHistory(ctx context.Context, taskID model.ID) ([]model.HistoryEntry, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, task_id, event_type, details, created_at FROM history WHERE task_id = ? ORDER BY id DESC",
		taskID.String(),
	)
	if err != nil {
		return nil, err
	}
	return scanHistory(rows)
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, task_id, event_type, details, created_at FROM history ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	return scanHistory(rows)
}

func scanHistory(rows *sql.Rows) ([]model.HistoryEntry, error) {
	defer rows.Close()

	history := []model.HistoryEntry{}
	for rows.Next() {
		var entry model.HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.TaskID, &entry.EventType, &entry.Details, &entry.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

func formatCreatedDetails(task model.Task) string {
	return fmt.Sprintf("created: content='%s' checked=%t mark=%t", task.Content, task.Checked, task.Mark)
}

func formatDeletedDetails(task model.Task) string {
	return fmt.Sprintf("deleted: content='%s' checked=%t mark=%t", task.Content, task.Checked, task.Mark)
}

func formatTaskDiff(before, after model.Task) string {
	changes := []string{}
	if before.Content != after.Content {
		changes = append(changes, formatChange("content", before.Content, after.Content))
	}
	if before.Checked != after.Checked {
		changes = append(changes, formatChange("checked", fmt.Sprintf("%t", before.Checked), fmt.Sprintf("%t", after.Checked)))
	}
	if before.Mark != after.Mark {
		changes = append(changes, formatChange("mark", fmt.Sprintf("%t", before.Mark), fmt.Sprintf("%t", after.Mark)))
	}

	if len(changes) == 0 {
		return "updated: no changes"
	}

	return "updated: " + strings.Join(changes, "; ")
}

func formatChange(field, before, after string) string {
	return fmt.Sprintf("%s: '%s' -> '%s'", field, valueOrNone(before), valueOrNone(after))
}

func valueOrNone(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "none"
	}
	return trimmed
}
