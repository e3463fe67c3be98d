package tui

import (
	"fmt"
	"strings"

	"github.com/Joseda-hg/lazymemo/internal/model"
	"github.com/Joseda-hg/lazymemo/internal/tasklist"
)

const emptyListText = "No Task Now"

func formatTaskSummary(task model.Task) string {
	check := "[ ]"
	if task.Checked {
		check = "[x]"
	}
	star := " "
	if task.Mark {
		star = "*"
	}
	return fmt.Sprintf("%s %s %s", check, star, task.Content)
}

func formatCategoryTabs(active tasklist.Category) string {
	parts := make([]string, 0, 3)
	for i, category := range tasklist.Categories() {
		label := fmt.Sprintf("%d %s %s", i+1, category.Label(), category)
		if category == active {
			label = "[" + label + "]"
		} else {
			label = " " + label + " "
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func formatHistoryEntry(entry model.HistoryEntry) string {
	return fmt.Sprintf("%s | %s | %s", entry.CreatedAt.Local().Format("2006-01-02 15:04"), entry.EventType, entry.Details)
}
