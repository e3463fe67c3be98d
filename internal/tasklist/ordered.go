package tasklist

import "github.com/Joseda-hg/lazymemo/internal/model"

// orderedTasks keeps tasks in arrival order with an id index for in-place
// replacement and removal.
type orderedTasks struct {
	items []model.Task
	index map[string]int
}

func newOrderedTasks(tasks []model.Task) *orderedTasks {
	o := &orderedTasks{items: append(make([]model.Task, 0, len(tasks)), tasks...)}
	o.reindex(0)
	return o
}

func (o *orderedTasks) reindex(from int) {
	if o.index == nil || from == 0 {
		o.index = make(map[string]int, len(o.items))
	}
	for i := from; i < len(o.items); i++ {
		o.index[o.items[i].ID.String()] = i
	}
}

func (o *orderedTasks) position(id model.ID) (int, bool) {
	pos, ok := o.index[id.String()]
	return pos, ok
}

func (o *orderedTasks) get(id model.ID) (model.Task, bool) {
	pos, ok := o.position(id)
	if !ok {
		return model.Task{}, false
	}
	return o.items[pos], true
}

func (o *orderedTasks) append(task model.Task) {
	if pos, ok := o.position(task.ID); ok {
		o.items[pos] = task
		return
	}
	o.items = append(o.items, task)
	o.index[task.ID.String()] = len(o.items) - 1
}

func (o *orderedTasks) insert(pos int, task model.Task) {
	if pos >= len(o.items) {
		o.append(task)
		return
	}
	o.items = append(o.items, model.Task{})
	copy(o.items[pos+1:], o.items[pos:])
	o.items[pos] = task
	o.reindex(pos)
}

func (o *orderedTasks) replace(task model.Task) bool {
	pos, ok := o.position(task.ID)
	if !ok {
		return false
	}
	o.items[pos] = task
	return true
}

func (o *orderedTasks) remove(id model.ID) bool {
	pos, ok := o.position(id)
	if !ok {
		return false
	}
	o.items = append(o.items[:pos], o.items[pos+1:]...)
	delete(o.index, id.String())
	o.reindex(pos)
	return true
}

func (o *orderedTasks) snapshot() []model.Task {
	result := make([]model.Task, len(o.items))
	copy(result, o.items)
	return result
}
