package tasklist

import (
	"math/rand"
	"reflect"
	"strconv"
	"testing"

	"github.com/Joseda-hg/lazymemo/internal/model"
)

func TestUnfinishedHidesTaskOnceChecked(t *testing.T) {
	list := New(Unfinished)
	list.Load([]model.Task{{ID: model.NumericID(1), Content: "A"}})
	if list.VisibleLen() != 1 {
		t.Fatalf("expected task1 visible, got %d visible", list.VisibleLen())
	}

	if !list.Replace(model.Task{ID: model.NumericID(1), Content: "A", Checked: true}) {
		t.Fatalf("expected replace to find task1")
	}

	if list.VisibleLen() != 0 {
		t.Fatalf("expected empty visible list, got %v", list.Visible())
	}
	task, ok := list.Get(model.NumericID(1))
	if !ok {
		t.Fatalf("expected task1 to stay in the original list")
	}
	if !task.Checked {
		t.Fatalf("expected task1 to be checked in the original list")
	}
}

func TestImportantHidesTaskOnceUnmarked(t *testing.T) {
	list := New(Important)
	list.Load([]model.Task{
		{ID: model.NumericID(1), Content: "A", Mark: true},
		{ID: model.NumericID(2), Content: "B", Mark: true},
	})

	list.Replace(model.Task{ID: model.NumericID(1), Content: "A"})

	visible := list.Visible()
	if len(visible) != 1 || visible[0].Content != "B" {
		t.Fatalf("expected only B visible, got %v", visible)
	}
	if list.Len() != 2 {
		t.Fatalf("expected 2 tasks in original list, got %d", list.Len())
	}
}

func TestImportantExcludesNewUnmarkedTask(t *testing.T) {
	list := New(Important)
	list.Load([]model.Task{{ID: model.NumericID(1), Content: "A", Mark: true}})
	before := list.Visible()

	list.Append(model.Task{ID: model.NumericID(2), Content: "B"})

	if list.Len() != 2 {
		t.Fatalf("expected original list to gain B, got %d tasks", list.Len())
	}
	if !reflect.DeepEqual(before, list.Visible()) {
		t.Fatalf("expected visible list unchanged, got %v", list.Visible())
	}
}

func TestAppendReadsActualMarkFlag(t *testing.T) {
	list := New(Important)
	list.Append(model.Task{ID: model.NumericID(1), Content: "A", Mark: true})
	if list.VisibleLen() != 1 {
		t.Fatalf("expected marked task to be visible under Important")
	}

	list.SetCategory(Unfinished)
	list.Append(model.Task{ID: model.NumericID(2), Content: "B", Checked: true})
	if list.IsVisible(model.NumericID(2)) {
		t.Fatalf("expected checked task to stay hidden under Unfinished")
	}
}

func TestRemoveDropsFromBothLists(t *testing.T) {
	list := New(All)
	list.Load([]model.Task{
		{ID: model.NumericID(1), Content: "A"},
		{ID: model.NumericID(2), Content: "B"},
		{ID: model.NumericID(3), Content: "C"},
	})

	if !list.Remove(model.NumericID(2)) {
		t.Fatalf("expected remove to find task 2")
	}

	want := []model.Task{
		{ID: model.NumericID(1), Content: "A"},
		{ID: model.NumericID(3), Content: "C"},
	}
	if !reflect.DeepEqual(list.Original(), want) {
		t.Fatalf("unexpected original list: %v", list.Original())
	}
	if !reflect.DeepEqual(list.Visible(), want) {
		t.Fatalf("unexpected visible list: %v", list.Visible())
	}
	if _, ok := list.Get(model.NumericID(3)); !ok {
		t.Fatalf("expected task 3 to remain addressable after removal of 2")
	}
}

func TestReplaceKeepsPosition(t *testing.T) {
	list := New(All)
	list.Load([]model.Task{
		{ID: model.NumericID(1), Content: "A"},
		{ID: model.NumericID(2), Content: "B"},
	})

	list.Replace(model.Task{ID: model.NumericID(1), Content: "A2", Mark: true})

	visible := list.Visible()
	if visible[0].Content != "A2" || !visible[0].Mark {
		t.Fatalf("expected first task replaced in place, got %v", visible)
	}
}

func TestReplaceUnknownTask(t *testing.T) {
	list := New(All)
	if list.Replace(model.Task{ID: model.NumericID(9), Content: "X"}) {
		t.Fatalf("expected replace of unknown id to report false")
	}
	if list.Len() != 0 || list.VisibleLen() != 0 {
		t.Fatalf("expected lists to stay empty")
	}
}

func TestReplaceRestoresTaskInOriginalOrder(t *testing.T) {
	list := New(Important)
	list.Load([]model.Task{
		{ID: model.NumericID(1), Content: "A", Mark: true},
		{ID: model.NumericID(2), Content: "B"},
		{ID: model.NumericID(3), Content: "C", Mark: true},
	})

	list.Replace(model.Task{ID: model.NumericID(2), Content: "B", Mark: true})

	got := contents(list.Visible())
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSetCategoryRecomputesFromOriginal(t *testing.T) {
	tasks := []model.Task{
		{ID: model.NumericID(1), Content: "A", Mark: true},
		{ID: model.NumericID(2), Content: "B", Checked: true},
		{ID: model.NumericID(3), Content: "C", Mark: true, Checked: true},
	}
	list := New(All)
	list.Load(tasks)

	cases := []struct {
		category Category
		want     []string
	}{
		{Important, []string{"A", "C"}},
		{Unfinished, []string{"A"}},
		{All, []string{"A", "B", "C"}},
		{Unfinished, []string{"A"}},
	}
	for _, tc := range cases {
		list.SetCategory(tc.category)
		if got := contents(list.Visible()); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.category, tc.want, got)
		}
	}
}

func TestIncrementalUpdatesMatchFullFilter(t *testing.T) {
	for _, category := range Categories() {
		t.Run(category.String(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(int64(category) + 42))
			list := New(category)

			initial := make([]model.Task, 0, 8)
			for i := 1; i <= 8; i++ {
				initial = append(initial, model.Task{
					ID:      model.NumericID(int64(i)),
					Content: "task " + strconv.Itoa(i),
					Checked: rng.Intn(2) == 0,
					Mark:    rng.Intn(2) == 0,
				})
			}
			list.Load(initial)
			nextID := int64(len(initial) + 1)

			for step := 0; step < 500; step++ {
				original := list.Original()
				switch op := rng.Intn(5); {
				case op == 0 || len(original) == 0:
					list.Append(model.Task{
						ID:      model.NumericID(nextID),
						Content: "task " + strconv.FormatInt(nextID, 10),
						Mark:    rng.Intn(4) == 0,
					})
					nextID++
				case op == 1:
					list.Remove(original[rng.Intn(len(original))].ID)
				case op == 2:
					task := original[rng.Intn(len(original))]
					task.Checked = !task.Checked
					list.Replace(task)
				case op == 3:
					task := original[rng.Intn(len(original))]
					task.Mark = !task.Mark
					list.Replace(task)
				default:
					task := original[rng.Intn(len(original))]
					task.Content += "!"
					list.Replace(task)
				}

				want := Filter(list.Original(), category)
				if got := list.Visible(); !reflect.DeepEqual(got, want) {
					t.Fatalf("step %d: visible list diverged from filter\n got: %v\nwant: %v", step, got, want)
				}
			}
		})
	}
}

func contents(tasks []model.Task) []string {
	result := make([]string, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, task.Content)
	}
	return result
}
