package tui

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
	"github.com/rs/zerolog"

	"github.com/Joseda-hg/lazymemo/internal/model"
	"github.com/Joseda-hg/lazymemo/internal/tasklist"
	"github.com/Joseda-hg/lazymemo/internal/todo"
)

const (
	viewHeader  = "header"
	viewFooter  = "footer"
	viewTasks   = "tasks"
	viewHistory = "history"
	viewPrompt  = "prompt"
	viewHelp    = "help"
)

const editRejectedStatus = "Edit failed: please enter content"

// HistorySource lists journal entries for a task.
type HistorySource interface {
	ListHistory(ctx context.Context, taskID model.ID) ([]model.HistoryEntry, error)
}

type UI struct {
	service *todo.Service
	history HistorySource
	logger  zerolog.Logger
	gui     *gocui.Gui

	tasks   []model.Task
	entries []model.HistoryEntry

	selected        int
	selectedHistory int
	focus           string

	prompt       *promptState
	promptEditor *promptEditor
	helpActive   bool
	status       string
}

func Run(service *todo.Service, history HistorySource, logger zerolog.Logger) error {
	gui, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputNormal})
	if err != nil {
		return err
	}
	defer gui.Close()

	ui := newUI(service, history, logger)
	ui.gui = gui
	gui.Mouse = true

	gui.SetManagerFunc(ui.layout)
	if err := ui.bindKeys(gui); err != nil {
		return err
	}
	if err := ui.reload(nil, nil); err != nil {
		return err
	}

	if err := gui.MainLoop(); err != nil && !goerrors.Is(err, gocui.ErrQuit) {
		return err
	}

	return nil
}

func newUI(service *todo.Service, history HistorySource, logger zerolog.Logger) *UI {
	ui := &UI{
		service: service,
		history: history,
		logger:  logger,
		focus:   viewTasks,
	}
	ui.promptEditor = &promptEditor{ui: ui}
	return ui
}

func (u *UI) bindKeys(gui *gocui.Gui) error {
	global := []struct {
		key     any
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyCtrlC, u.quit},
		{'q', u.quit},
		{'r', u.reload},
		{'1', u.showAll},
		{'2', u.showImportant},
		{'3', u.showUnfinished},
		{gocui.KeyTab, u.nextCategory},
		{gocui.KeyBacktab, u.prevCategory},
		{'a', u.startAdd},
		{'e', u.startEdit},
		{'x', u.toggleChecked},
		{'m', u.toggleMark},
		{'d', u.deleteTask},
		{'h', u.toggleHistoryFocus},
		{'?', u.toggleHelp},
	}
	for _, binding := range global {
		if err := gui.SetKeybinding("", binding.key, gocui.ModNone, binding.handler); err != nil {
			return err
		}
	}

	for _, name := range []string{viewTasks, viewHistory} {
		if err := gui.SetKeybinding(name, gocui.KeyArrowDown, gocui.ModNone, u.moveDown); err != nil {
			return err
		}
		if err := gui.SetKeybinding(name, 'j', gocui.ModNone, u.moveDown); err != nil {
			return err
		}
		if err := gui.SetKeybinding(name, gocui.KeyArrowUp, gocui.ModNone, u.moveUp); err != nil {
			return err
		}
		if err := gui.SetKeybinding(name, 'k', gocui.ModNone, u.moveUp); err != nil {
			return err
		}
		if err := gui.SetKeybinding(name, gocui.MouseWheelUp, gocui.ModNone, u.scrollUp); err != nil {
			return err
		}
		if err := gui.SetKeybinding(name, gocui.MouseWheelDown, gocui.ModNone, u.scrollDown); err != nil {
			return err
		}
	}
	if err := gui.SetKeybinding(viewTasks, gocui.KeyEnter, gocui.ModNone, u.toggleChecked); err != nil {
		return err
	}

	if err := gui.SetKeybinding(viewPrompt, gocui.KeyEnter, gocui.ModNone, u.submitPrompt); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewPrompt, gocui.KeyEsc, gocui.ModNone, u.cancelPrompt); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewHelp, gocui.KeyEsc, gocui.ModNone, u.closeHelp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewHelp, '?', gocui.ModNone, u.closeHelp); err != nil {
		return err
	}

	for _, name := range []string{viewTasks, viewHistory} {
		viewName := name
		if err := gui.SetViewClickBinding(&gocui.ViewMouseBinding{ViewName: viewName, Key: gocui.MouseLeft, Handler: func(opts gocui.ViewMouseBindingOpts) error {
			return u.onListClick(gui, viewName, opts)
		}}); err != nil {
			return err
		}
	}
	return nil
}

func (u *UI) layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	if maxX <= 0 || maxY <= 0 {
		return nil
	}

	headerView, err := gui.SetView(viewHeader, 0, 0, maxX-1, 2, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		headerView.Title = "Your Todo Memo"
	}
	headerView.Frame = true
	u.renderHeader(headerView)

	footerY1 := max(maxY-1, 4)
	footerY0 := max(footerY1-3, 3)
	footerView, err := gui.SetView(viewFooter, 0, footerY0, maxX-1, footerY1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	footerView.Frame = false
	footerView.Wrap = true
	footerView.FgColor = gocui.ColorDefault | gocui.AttrDim
	u.renderFooter(footerView)

	bodyTop := 3
	bodyBottom := footerY0 - 1
	if bodyBottom <= bodyTop {
		return nil
	}

	tasksX1 := max(maxX*2/3, 30)
	if tasksX1 >= maxX-1 {
		tasksX1 = maxX - 1
	}

	tasksView, err := gui.SetView(viewTasks, 0, bodyTop, tasksX1, bodyBottom, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	tasksView.Title = fmt.Sprintf("Tasks (%d/%d)", len(u.tasks), u.service.List().Len())
	applyViewStyle(tasksView, u.focus == viewTasks, len(u.tasks) > 0)
	u.renderTasks(tasksView)

	if tasksX1+1 < maxX-1 {
		historyView, err := gui.SetView(viewHistory, tasksX1+1, bodyTop, maxX-1, bodyBottom, 0)
		if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		if goerrors.Is(err, gocui.ErrUnknownView) {
			historyView.Title = "History"
			historyView.Wrap = true
		}
		applyViewStyle(historyView, u.focus == viewHistory, len(u.entries) > 0)
		u.renderHistory(historyView)
	}

	if u.prompt != nil {
		if err := u.showPrompt(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewPrompt)
	}

	if u.helpActive {
		if err := u.showHelp(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewHelp)
	}

	if gui.CurrentView() == nil {
		_, _ = gui.SetCurrentView(u.focus)
	}
	gui.Cursor = u.prompt != nil

	return nil
}

func (u *UI) renderHeader(view *gocui.View) {
	view.Clear()
	fmt.Fprint(view, formatCategoryTabs(u.service.Category()))
}

func (u *UI) renderFooter(view *gocui.View) {
	view.Clear()
	fmt.Fprintln(view, "a add | e edit | x/enter check | m mark | d delete | 1-3 or tab category")
	fmt.Fprintln(view, "h history | r reload | ? help | q quit")
	if u.status != "" {
		fmt.Fprint(view, u.status)
	}
}

func (u *UI) renderTasks(view *gocui.View) {
	view.Clear()
	if len(u.tasks) == 0 {
		fmt.Fprint(view, emptyListText)
		return
	}
	editing := u.editingTaskID()
	for i, task := range u.tasks {
		prefix := " "
		if i == u.selected {
			prefix = ">"
		}
		line := formatTaskSummary(task)
		if !editing.IsZero() && editing.Equal(task.ID) {
			line += "  (editing)"
		}
		fmt.Fprintf(view, "%s %s\n", prefix, line)
	}
	if u.focus == viewTasks {
		view.SetCursor(0, min(u.selected, len(u.tasks)-1))
	}
}

func (u *UI) renderHistory(view *gocui.View) {
	view.Clear()
	if len(u.entries) == 0 {
		fmt.Fprint(view, "No history")
		return
	}
	for i, entry := range u.entries {
		prefix := " "
		if i == u.selectedHistory && u.focus == viewHistory {
			prefix = ">"
		}
		fmt.Fprintf(view, "%s %s\n", prefix, formatHistoryEntry(entry))
	}
	if u.focus == viewHistory {
		view.SetCursor(0, min(u.selectedHistory, len(u.entries)-1))
	}
}

func (u *UI) showPrompt(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(40, maxX/2)
	height := 2
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(viewPrompt, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	view.Title = u.prompt.title()
	view.Editable = true
	view.KeybindOnEdit = true
	view.Editor = u.promptEditor
	u.renderPrompt(view)
	_, _ = gui.SetCurrentView(viewPrompt)
	return nil
}

func (u *UI) renderPrompt(view *gocui.View) {
	if u.prompt == nil || view == nil {
		return
	}
	view.Clear()
	fmt.Fprint(view, u.prompt.value)
	view.SetCursor(len([]rune(u.prompt.value)), 0)
}

func (u *UI) showHelp(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(50, maxX/2)
	height := 14
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(viewHelp, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Help"
		view.Wrap = true
	}
	view.Clear()
	fmt.Fprint(view, helpText())
	_, _ = gui.SetCurrentView(viewHelp)
	return nil
}

// refresh copies the visible list out of the service and reloads the history
// of the selected task.
func (u *UI) refresh() error {
	u.tasks = u.service.Visible()
	if u.selected >= len(u.tasks) {
		u.selected = max(len(u.tasks)-1, 0)
	}
	return u.loadHistory()
}

func (u *UI) loadHistory() error {
	selected := u.selectedTask()
	if selected == nil || u.history == nil {
		u.entries = nil
		return nil
	}

	entries, err := u.history.ListHistory(context.Background(), selected.ID)
	if err != nil {
		u.logger.Warn().Err(err).Str("task_id", selected.ID.String()).Msg("load history failed")
		u.entries = nil
		return nil
	}
	u.entries = entries
	if u.selectedHistory >= len(u.entries) {
		u.selectedHistory = max(len(u.entries)-1, 0)
	}
	return nil
}

func (u *UI) selectedTask() *model.Task {
	if u.selected >= 0 && u.selected < len(u.tasks) {
		return &u.tasks[u.selected]
	}
	return nil
}

func (u *UI) editingTaskID() model.ID {
	if u.prompt == nil || u.prompt.mode != promptEdit {
		return model.ID{}
	}
	return u.prompt.taskID
}

// isEditing reports whether the edit prompt is open for id.
func (u *UI) isEditing(id model.ID) bool {
	editing := u.editingTaskID()
	return !editing.IsZero() && editing.Equal(id)
}

func (u *UI) reload(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if err := u.service.Load(context.Background()); err != nil {
		u.status = err.Error()
		return u.refresh()
	}
	u.status = ""
	return u.refresh()
}

func (u *UI) setCategory(category tasklist.Category) error {
	if u.inputActive() {
		return nil
	}
	u.service.SetCategory(category)
	u.selected = 0
	return u.refresh()
}

func (u *UI) showAll(_ *gocui.Gui, _ *gocui.View) error {
	return u.setCategory(tasklist.All)
}

func (u *UI) showImportant(_ *gocui.Gui, _ *gocui.View) error {
	return u.setCategory(tasklist.Important)
}

func (u *UI) showUnfinished(_ *gocui.Gui, _ *gocui.View) error {
	return u.setCategory(tasklist.Unfinished)
}

func (u *UI) nextCategory(_ *gocui.Gui, _ *gocui.View) error {
	return u.setCategory(u.service.Category().Next())
}

func (u *UI) prevCategory(_ *gocui.Gui, _ *gocui.View) error {
	return u.setCategory(u.service.Category().Prev())
}

func (u *UI) moveDown(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewHistory:
		if u.selectedHistory < len(u.entries)-1 {
			u.selectedHistory++
		}
	default:
		if u.selected < len(u.tasks)-1 {
			u.selected++
			u.selectedHistory = 0
			return u.loadHistory()
		}
	}
	return nil
}

func (u *UI) moveUp(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewHistory:
		if u.selectedHistory > 0 {
			u.selectedHistory--
		}
	default:
		if u.selected > 0 {
			u.selected--
			u.selectedHistory = 0
			return u.loadHistory()
		}
	}
	return nil
}

func (u *UI) toggleHistoryFocus(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if u.focus == viewHistory {
		u.focus = viewTasks
	} else {
		u.focus = viewHistory
	}
	if gui != nil {
		_, _ = gui.SetCurrentView(u.focus)
	}
	return nil
}

func (u *UI) onListClick(gui *gocui.Gui, viewName string, opts gocui.ViewMouseBindingOpts) error {
	if u.inputActive() {
		return nil
	}
	view, err := gui.View(viewName)
	if err != nil {
		return nil
	}

	_, y0, _, _ := view.Dimensions()
	_, oy := view.Origin()
	row := max(opts.Y-y0-1+oy, 0)

	u.focus = viewName
	_, _ = gui.SetCurrentView(viewName)
	switch viewName {
	case viewHistory:
		u.selectedHistory = max(min(row, len(u.entries)-1), 0)
		return nil
	default:
		u.selected = max(min(row, len(u.tasks)-1), 0)
		return u.loadHistory()
	}
}

func (u *UI) scrollUp(gui *gocui.Gui, view *gocui.View) error {
	if u.inputActive() || view == nil {
		return nil
	}
	view.ScrollUp(1)
	return nil
}

func (u *UI) scrollDown(gui *gocui.Gui, view *gocui.View) error {
	if u.inputActive() || view == nil {
		return nil
	}
	view.ScrollDown(1)
	return nil
}

func (u *UI) startAdd(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.prompt = &promptState{mode: promptAdd}
	return nil
}

func (u *UI) startEdit(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}
	u.prompt = &promptState{mode: promptEdit, taskID: selected.ID, value: selected.Content}
	return nil
}

func (u *UI) submitPrompt(gui *gocui.Gui, _ *gocui.View) error {
	if u.prompt == nil {
		return nil
	}

	switch u.prompt.mode {
	case promptEdit:
		if _, err := u.service.EditContent(context.Background(), u.prompt.taskID, u.prompt.value); err != nil {
			if goerrors.Is(err, todo.ErrEmptyContent) {
				u.status = editRejectedStatus
			} else {
				u.status = err.Error()
			}
			return nil
		}
		u.status = ""
	default:
		created, err := u.service.Create(context.Background(), u.prompt.value)
		if err != nil {
			u.status = err.Error()
			return nil
		}
		u.status = ""
		if !u.service.List().IsVisible(created.ID) {
			u.status = fmt.Sprintf("Added %q (hidden by %s)", created.Content, u.service.Category())
		}
	}

	u.closePrompt(gui)
	return u.refresh()
}

func (u *UI) cancelPrompt(gui *gocui.Gui, _ *gocui.View) error {
	u.closePrompt(gui)
	return nil
}

func (u *UI) closePrompt(gui *gocui.Gui) {
	u.prompt = nil
	if gui != nil {
		_ = gui.DeleteView(viewPrompt)
		_, _ = gui.SetCurrentView(u.focus)
	}
}

func (u *UI) toggleChecked(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}
	if _, err := u.service.ToggleChecked(context.Background(), selected.ID); err != nil {
		u.status = err.Error()
		return nil
	}
	u.status = ""
	return u.refresh()
}

func (u *UI) toggleMark(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}
	if _, err := u.service.ToggleMark(context.Background(), selected.ID); err != nil {
		u.status = err.Error()
		return nil
	}
	u.status = ""
	return u.refresh()
}

func (u *UI) deleteTask(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}
	if err := u.service.Delete(context.Background(), selected.ID); err != nil {
		u.status = err.Error()
		return nil
	}
	u.status = ""
	return u.refresh()
}

func (u *UI) toggleHelp(_ *gocui.Gui, _ *gocui.View) error {
	if u.prompt != nil {
		return nil
	}
	u.helpActive = !u.helpActive
	return nil
}

func (u *UI) closeHelp(gui *gocui.Gui, _ *gocui.View) error {
	u.helpActive = false
	if gui != nil {
		_ = gui.DeleteView(viewHelp)
		_, _ = gui.SetCurrentView(u.focus)
	}
	return nil
}

func (u *UI) inputActive() bool {
	return u.prompt != nil || u.helpActive
}

func (u *UI) quit(_ *gocui.Gui, _ *gocui.View) error {
	if u.prompt != nil {
		return nil
	}
	return gocui.ErrQuit
}

func helpText() string {
	return strings.Join([]string{
		"Categories:",
		"  1 All (全部) | 2 Important (重要) | 3 Unfinished (未完)",
		"  tab / shift+tab cycle categories",
		"",
		"Tasks:",
		"  a add | e edit | x or enter toggle done | m toggle important | d delete",
		"  j/k or arrows move selection | mouse click selects",
		"",
		"Prompt:",
		"  enter save | esc cancel | ctrl+u clear",
		"",
		"Other:",
		"  h focus history | r reload from server | ? help | q quit",
	}, "\n")
}

func applyViewStyle(view *gocui.View, focused bool, highlight bool) {
	view.Frame = true
	view.Highlight = focused && highlight
	view.HighlightInactive = false
	view.SelBgColor = gocui.ColorBlue
	view.SelFgColor = gocui.ColorBlack
	view.InactiveViewSelBgColor = gocui.ColorDefault
	if focused {
		view.FrameColor = gocui.ColorCyan
		view.TitleColor = gocui.ColorCyan
	} else {
		view.FrameColor = gocui.ColorDefault
		view.TitleColor = gocui.ColorDefault
	}
}
