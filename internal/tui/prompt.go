package tui

import (
	"github.com/jesseduffield/gocui"

	"github.com/Joseda-hg/lazymemo/internal/model"
)

type promptMode int

const (
	promptAdd promptMode = iota
	promptEdit
)

// promptState backs the add and edit popups. While an edit prompt is open the
// task it targets is in the editing state.
type promptState struct {
	mode   promptMode
	taskID model.ID
	value  string
}

func (p *promptState) title() string {
	if p.mode == promptEdit {
		return "Edit Task"
	}
	return "New Task"
}

type promptEditor struct {
	ui *UI
}

func (e *promptEditor) Edit(view *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	ui := e.ui
	if ui == nil || ui.prompt == nil {
		return false
	}
	prompt := ui.prompt

	switch key {
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		runes := []rune(prompt.value)
		if len(runes) > 0 {
			prompt.value = string(runes[:len(runes)-1])
		}
	case gocui.KeySpace:
		prompt.value += " "
	case gocui.KeyCtrlU:
		prompt.value = ""
	}

	if ch != 0 && ch != '\n' && ch != '\r' && mod == 0 {
		prompt.value += string(ch)
	}

	ui.renderPrompt(view)
	return true
}
