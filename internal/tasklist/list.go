// Package tasklist keeps the full task collection and the category-filtered
// view of it consistent across single-task mutations.
package tasklist

import "github.com/Joseda-hg/lazymemo/internal/model"

// List holds the authoritative tasks and the subset visible under the active
// category. It is not safe for concurrent use.
type List struct {
	original *orderedTasks
	target   *orderedTasks
	category Category
}

func New(category Category) *List {
	return &List{
		original: newOrderedTasks(nil),
		target:   newOrderedTasks(nil),
		category: category,
	}
}

// Load replaces both collections with a freshly fetched task set.
func (l *List) Load(tasks []model.Task) {
	l.original = newOrderedTasks(tasks)
	l.target = newOrderedTasks(Filter(tasks, l.category))
}

// SetCategory switches the filter and rebuilds the visible list from the
// original collection.
func (l *List) SetCategory(category Category) {
	l.category = category
	l.target = newOrderedTasks(Filter(l.original.items, category))
}

func (l *List) Category() Category {
	return l.category
}

// Append adds a newly created task. Visibility is decided from the task as
// returned by the store, not from assumed defaults.
func (l *List) Append(task model.Task) {
	l.original.append(task)
	if l.category.Includes(task) {
		l.target.append(task)
	}
}

// Replace swaps the stored copy of task (matched by id) and patches the visible
// list: a task that no longer matches the filter is dropped, one that still
// matches is replaced in place. It reports false if the id is unknown.
func (l *List) Replace(task model.Task) bool {
	if !l.original.replace(task) {
		return false
	}

	if !l.category.Includes(task) {
		l.target.remove(task.ID)
		return true
	}
	if l.target.replace(task) {
		return true
	}
	l.target.insert(l.visiblePosition(task.ID), task)
	return true
}

// Remove drops the task from both collections.
func (l *List) Remove(id model.ID) bool {
	if !l.original.remove(id) {
		return false
	}
	l.target.remove(id)
	return true
}

func (l *List) Get(id model.ID) (model.Task, bool) {
	return l.original.get(id)
}

func (l *List) IsVisible(id model.ID) bool {
	_, ok := l.target.position(id)
	return ok
}

func (l *List) Original() []model.Task {
	return l.original.snapshot()
}

func (l *List) Visible() []model.Task {
	return l.target.snapshot()
}

func (l *List) Len() int {
	return len(l.original.items)
}

func (l *List) VisibleLen() int {
	return len(l.target.items)
}

// visiblePosition returns where id belongs in the visible list so that the
// visible order stays a subsequence of the original order.
func (l *List) visiblePosition(id model.ID) int {
	origPos, ok := l.original.position(id)
	if !ok {
		return len(l.target.items)
	}
	pos := 0
	for _, visible := range l.target.items {
		p, ok := l.original.position(visible.ID)
		if ok && p < origPos {
			pos++
		}
	}
	return pos
}
