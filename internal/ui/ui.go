package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"taskflow/internal/config"
	"taskflow/internal/state"
	"taskflow/internal/store"
)

type page int

const (
	pageDashboard page = iota
	pageTasks
	pageAnalytics
	pageCount
)

func (p page) String() string {
	switch p {
	case pageTasks:
		return "Tasks"
	case pageAnalytics:
		return "Analytics"
	default:
		return "Dashboard"
	}
}

func parsePage(v string) page {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "tasks":
		return pageTasks
	case "analytics":
		return pageAnalytics
	default:
		return pageDashboard
	}
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeSearch
	modeSubtask
	modeCategory
)

var categoryColors = []string{"#F59E0B", "#14B8A6", "#EC4899", "#6366F1", "#84CC16"}

type Model struct {
	store *store.Store
	cfg   config.Config
	newID func() string

	page       page
	mode       mode
	cursor     int
	subCursor  int
	input      textinput.Model
	form       *formState
	confirmDel bool
	pendingDel *state.Task
	status     string
	width      int
}

// New builds the root model. It fails when s is not an initialized
// container.
func New(s *store.Store, cfg config.Config) (Model, error) {
	if err := store.Check(s); err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		store:  s,
		cfg:    cfg,
		newID:  uuid.NewString,
		page:   parsePage(cfg.DefaultView),
		input:  ti,
		mode:   modeList,
		status: fmt.Sprintf("Press %s/%s/%s to switch views, %s to quit.", cfg.Keys.Dashboard, cfg.Keys.Tasks, cfg.Keys.Analytics, cfg.Keys.Quit),
	}, nil
}

func Run(s *store.Store, cfg config.Config) error {
	m, err := New(s, cfg)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeForm:
			return m.updateFormMode(msg.String(), msg)
		case modeSearch, modeSubtask, modeCategory:
			return m.updateInputMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.Dashboard:
		m.page = pageDashboard
		return m, nil
	case k.Tasks:
		m.page = pageTasks
		return m, nil
	case k.Analytics:
		m.page = pageAnalytics
		return m, nil
	case k.NextView:
		m.page = (m.page + 1) % pageCount
		return m, nil
	}
	if m.page != pageTasks {
		return m, nil
	}

	visible := m.visibleTasks()
	switch key {
	case k.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(visible))
		m.subCursor = 0
	case k.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(visible))
		m.subCursor = 0
	case k.Add:
		return m.startForm(nil)
	case k.Edit:
		task, ok := m.selected()
		if !ok {
			m.status = "No task to edit"
			return m, nil
		}
		return m.startForm(&task)
	case k.Delete:
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &task
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", task.Title)
	case k.Toggle:
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.store.Dispatch(state.ToggleTask{ID: task.ID})
		m.cursor = clampCursor(m.cursor, len(m.visibleTasks()))
		m.status = "Marked " + humanDone(!task.Completed) + ": " + task.Title
	case k.AddSubtask:
		if _, ok := m.selected(); !ok {
			m.status = "Select a task first"
			return m, nil
		}
		return m.startInput(modeSubtask, "", "Subtask title")
	case k.SubtaskNext:
		if task, ok := m.selected(); ok {
			m.subCursor = clampCursor(m.subCursor+1, len(task.Subtasks))
		}
	case k.SubtaskPrev:
		if task, ok := m.selected(); ok {
			m.subCursor = clampCursor(m.subCursor-1, len(task.Subtasks))
		}
	case k.ToggleSubtask:
		task, ok := m.selected()
		if !ok || len(task.Subtasks) == 0 {
			m.status = "No subtask selected"
			return m, nil
		}
		sub := task.Subtasks[clampCursor(m.subCursor, len(task.Subtasks))]
		m.store.Dispatch(state.ToggleSubtask{TaskID: task.ID, SubtaskID: sub.ID})
		m.status = "Marked " + humanDone(!sub.Completed) + ": " + sub.Title
	case k.AddCategory:
		return m.startInput(modeCategory, "", "Category name")
	case k.Search:
		return m.startInput(modeSearch, m.store.State().Filter.Search, "Search title, description or tags")
	case k.CyclePriority:
		options := []string{""}
		for _, p := range state.Priorities() {
			options = append(options, string(p))
		}
		next := cycle(options, m.store.State().Filter.Priority)
		m.setFilter(state.FilterPatch{Priority: state.Set(next)})
	case k.CycleCategory:
		options := []string{""}
		for _, c := range m.store.State().Categories {
			options = append(options, c.ID)
		}
		next := cycle(options, m.store.State().Filter.Category)
		m.setFilter(state.FilterPatch{Category: state.Set(next)})
	case k.CycleStatus:
		options := append([]string{""}, state.Statuses()...)
		next := cycle(options, m.store.State().Filter.Status)
		m.setFilter(state.FilterPatch{Status: state.Set(next)})
	case k.ClearFilter:
		m.setFilter(state.ClearFilter())
	}
	return m, nil
}

func (m *Model) setFilter(p state.FilterPatch) {
	m.store.Dispatch(state.UpdateFilter{Patch: p})
	m.cursor = clampCursor(m.cursor, len(m.visibleTasks()))
	m.subCursor = 0
	m.status = "Filter: " + describeFilter(m.store.State().Filter)
}

func (m Model) startInput(md mode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
	m.status = placeholder + ": Enter to confirm, Esc to cancel"
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) updateInputMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.endInput()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		value := strings.TrimSpace(m.input.Value())
		switch m.mode {
		case modeSearch:
			m.setFilter(state.FilterPatch{Search: state.Set(value)})
		case modeSubtask:
			if value == "" {
				m.status = "Subtask title cannot be empty"
				return m, nil
			}
			task, ok := m.selected()
			if !ok {
				m.status = "Task no longer visible"
				break
			}
			m.store.Dispatch(state.AddSubtask{TaskID: task.ID, Subtask: state.Subtask{ID: m.newID(), Title: value}})
			m.subCursor = len(task.Subtasks)
			m.status = "Added subtask to " + task.Title
		case modeCategory:
			if !m.addCategory(value) {
				return m, nil
			}
		}
		m.endInput()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// addCategory reports whether the category was added; otherwise the reason
// is left in the status line.
func (m *Model) addCategory(name string) bool {
	id := slug(name)
	if id == "" {
		m.status = "Category name needs at least one letter or digit"
		return false
	}
	snap := m.store.State()
	if _, exists := snap.Category(id); exists {
		m.status = fmt.Sprintf("Category %q already exists", id)
		return false
	}
	m.store.Dispatch(state.AddCategory{Category: state.Category{
		ID:    id,
		Name:  name,
		Color: categoryColors[len(snap.Categories)%len(categoryColors)],
		Icon:  "🏷️",
	}})
	m.status = "Added category " + name
	return true
}

func (m *Model) endInput() {
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
}

func (m Model) startForm(task *state.Task) (tea.Model, tea.Cmd) {
	defaultCategory := ""
	if cats := m.store.State().Categories; len(cats) > 0 {
		defaultCategory = cats[0].ID
	}
	m.form = newForm(task, defaultCategory)
	m.mode = modeForm
	m.input.SetValue(m.form.currentValue())
	m.input.Placeholder = m.form.currentLabel()
	m.input.CursorEnd()
	m.status = m.formPrompt()
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeList
		return m, nil
	}
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.endInput()
		m.status = "Edit cancelled"
		return m, nil
	case "tab", "down":
		m.moveFormField(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFormField(-1)
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.form.setCurrentValue(m.input.Value())
		if m.form.last() {
			return m.saveForm()
		}
		m.moveFormField(1)
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) moveFormField(delta int) {
	m.form.setCurrentValue(m.input.Value())
	m.form.index = wrapIndex(m.form.index+delta, len(m.form.fields))
	m.input.SetValue(m.form.currentValue())
	m.input.Placeholder = m.form.currentLabel()
	m.input.CursorEnd()
	m.status = m.formPrompt()
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	now := m.store.Now()
	var base state.Task
	if m.form.taskID != "" {
		existing, ok := m.store.State().Task(m.form.taskID)
		if !ok {
			m.form = nil
			m.endInput()
			m.status = "Task no longer exists"
			return m, nil
		}
		base = existing
	} else {
		base = state.Task{ID: m.newID(), CreatedAt: now, UpdatedAt: now, Subtasks: []state.Subtask{}}
	}

	task, err := m.form.apply(base)
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}

	if m.form.taskID != "" {
		m.store.Dispatch(state.UpdateTask{Task: task})
		m.status = "Task saved"
	} else {
		m.store.Dispatch(state.AddTask{Task: task})
		m.status = "Added task"
	}
	m.form = nil
	m.endInput()

	visible := m.visibleTasks()
	if i := slices.IndexFunc(visible, func(t state.Task) bool { return t.ID == task.ID }); i >= 0 {
		m.cursor = i
	} else {
		m.cursor = clampCursor(m.cursor, len(visible))
		m.status += " (hidden by the active filter)"
	}
	m.subCursor = 0
	return m, nil
}

func (m Model) formPrompt() string {
	if m.form == nil {
		return ""
	}
	return fmt.Sprintf("Editing %s (field %d of %d). Enter to advance, tab/shift+tab to move, Esc to cancel.",
		m.form.currentLabel(), m.form.index+1, len(m.form.fields))
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Delete cancelled"
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			break
		}
		m.store.Dispatch(state.DeleteTask{ID: m.pendingDel.ID})
		m.cursor = clampCursor(m.cursor, len(m.visibleTasks()))
		m.subCursor = 0
		m.status = "Deleted task"
	default:
		return m, nil
	}
	m.confirmDel = false
	m.pendingDel = nil
	return m, nil
}

func (m Model) today() time.Time {
	return state.Today(m.store.Now())
}

func (m Model) visibleTasks() []state.Task {
	snap := m.store.State()
	return state.Visible(snap.Tasks, snap.Filter, m.today())
}

func (m Model) selected() (state.Task, bool) {
	visible := m.visibleTasks()
	if len(visible) == 0 {
		return state.Task{}, false
	}
	return visible[clampCursor(m.cursor, len(visible))], true
}

// cycle returns the option after current, wrapping around. Unknown values
// restart at the first option.
func cycle(options []string, current string) string {
	i := slices.Index(options, current)
	return options[wrapIndex(i+1, len(options))]
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func humanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}
