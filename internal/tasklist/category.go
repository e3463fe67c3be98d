package tasklist

import (
	"fmt"
	"strings"

	"github.com/Joseda-hg/lazymemo/internal/model"
)

type Category int

const (
	All Category = iota
	Important
	Unfinished
)

var categoryOrder = []Category{All, Important, Unfinished}

func Categories() []Category {
	return append([]Category(nil), categoryOrder...)
}

func (c Category) String() string {
	switch c {
	case Important:
		return "Important"
	case Unfinished:
		return "Unfinished"
	default:
		return "All"
	}
}

// Label is the short tab label used by the original web client.
func (c Category) Label() string {
	switch c {
	case Important:
		return "重要"
	case Unfinished:
		return "未完"
	default:
		return "全部"
	}
}

func (c Category) Next() Category {
	return categoryOrder[(int(c)+1)%len(categoryOrder)]
}

func (c Category) Prev() Category {
	return categoryOrder[(int(c)+len(categoryOrder)-1)%len(categoryOrder)]
}

// Includes reports whether task belongs in the visible list for c.
func (c Category) Includes(task model.Task) bool {
	switch c {
	case Important:
		return task.Mark
	case Unfinished:
		return !task.Checked
	default:
		return true
	}
}

func ParseCategory(value string) (Category, error) {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "", "all", "全部":
		return All, nil
	case "important", "marked", "重要":
		return Important, nil
	case "unfinished", "pending", "未完":
		return Unfinished, nil
	}
	return All, fmt.Errorf("unknown category %q", trimmed)
}

// Filter returns the tasks visible under c, in their original order.
func Filter(tasks []model.Task, c Category) []model.Task {
	result := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if c.Includes(task) {
			result = append(result, task)
		}
	}
	return result
}
