package db

import (
	"context"
	"strings"
	"testing"

	"github.com/Joseda-hg/lazymemo/internal/model"
)

func TestRecordAndListHistory(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	task := model.Task{ID: model.NumericID(1), Content: "Buy milk"}
	if err := store.RecordCreated(ctx, task); err != nil {
		t.Fatalf("record created: %v", err)
	}

	checked := task
	checked.Checked = true
	if err := store.RecordUpdated(ctx, task, checked); err != nil {
		t.Fatalf("record updated: %v", err)
	}

	other := model.Task{ID: model.NewID("abc"), Content: "Other"}
	if err := store.RecordDeleted(ctx, other); err != nil {
		t.Fatalf("record deleted: %v", err)
	}

	history, err := store.ListHistory(ctx, task.ID)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	if history[0].EventType != EventUpdated {
		t.Fatalf("expected newest entry 'updated', got %q", history[0].EventType)
	}
	if history[0].Details != "updated: checked: 'false' -> 'true'" {
		t.Fatalf("unexpected diff details %q", history[0].Details)
	}
	if history[1].EventType != EventCreated {
		t.Fatalf("expected oldest entry 'created', got %q", history[1].EventType)
	}

	recent, err := store.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 recent entries, got %d", len(recent))
	}
	if recent[0].TaskID != "abc" || recent[0].EventType != EventDeleted {
		t.Fatalf("unexpected newest entry %+v", recent[0])
	}
}

func TestFormatTaskDiff(t *testing.T) {
	before := model.Task{ID: model.NumericID(1), Content: "A"}

	if got := formatTaskDiff(before, before); got != "updated: no changes" {
		t.Fatalf("unexpected diff for identical tasks: %q", got)
	}

	after := model.Task{ID: model.NumericID(1), Content: "B", Mark: true}
	got := formatTaskDiff(before, after)
	if !strings.Contains(got, "content: 'A' -> 'B'") || !strings.Contains(got, "mark: 'false' -> 'true'") {
		t.Fatalf("unexpected diff %q", got)
	}
}

func newTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return NewStore(db), func() {
		_ = db.Close()
	}
}
