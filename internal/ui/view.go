package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskflow/internal/config"
	"taskflow/internal/state"
)

const (
	recentLimit   = 5
	upcomingLimit = 5
	tagLimit      = 10
	barWidth      = 30
)

var (
	brandStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563EB"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#6B7280"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("#1D4ED8")).Background(lipgloss.Color("#DBEAFE"))
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#E5E7EB")).Padding(0, 2).Width(18)
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#E5E7EB")).Padding(0, 1)

	priorityColors = map[state.Priority]lipgloss.Color{
		state.PriorityLow:    "#6B7280",
		state.PriorityMedium: "#CA8A04",
		state.PriorityHigh:   "#EA580C",
		state.PriorityUrgent: "#DC2626",
	}
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.page {
	case pageTasks:
		b.WriteString(m.renderTasks())
	case pageAnalytics:
		b.WriteString(m.renderAnalytics())
	default:
		b.WriteString(m.renderDashboard())
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(renderHelp(m.page, m.cfg.Keys)))
	return b.String()
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, pageCount)
	for p := pageDashboard; p < pageCount; p++ {
		style := tabStyle
		if p == m.page {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(p.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, brandStyle.Render("✔ TaskFlow Pro")+"  ", lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func renderHelp(p page, k config.Keymap) string {
	nav := fmt.Sprintf("%s/%s/%s views • %s next view • %s quit", k.Dashboard, k.Tasks, k.Analytics, k.NextView, k.Quit)
	if p != pageTasks {
		return nav
	}
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s delete • %s toggle • %s subtask • %s/%s pick subtask • %s toggle subtask\n"+
		"%s priority • %s category • %s status • %s search • %s clear filter • %s new category • %s",
		k.Up, k.Down, k.Add, k.Edit, k.Delete, keyLabel(k.Toggle), k.AddSubtask, k.SubtaskPrev, k.SubtaskNext, k.ToggleSubtask,
		k.CyclePriority, k.CycleCategory, k.CycleStatus, k.Search, k.ClearFilter, k.AddCategory, nav)
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (m Model) renderDashboard() string {
	snap := m.store.State()
	today := m.today()
	stats := state.ComputeStats(snap.Tasks, today)

	var b strings.Builder
	b.WriteString(headingStyle.Render("Dashboard"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(m.store.Now().Format("Monday, January 2, 2006")))
	b.WriteString("\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard("Total Tasks", stats.Total, brandStyle),
		renderCard("Completed", stats.Completed, doneStyle),
		renderCard("Pending", stats.Pending, pendingStyle),
		renderCard("Overdue", stats.Overdue, overdueStyle),
	))
	b.WriteString("\n")

	done, total := state.SubtaskProgress(snap.Tasks)
	progress := fmt.Sprintf("%s\n%s %3.0f%% of tasks complete\nSubtasks: %d/%d done",
		headingStyle.Render("Progress Overview"),
		renderBar(stats.CompletionRate(), barWidth), stats.CompletionRate()*100, done, total)

	var cats strings.Builder
	cats.WriteString(headingStyle.Render("Categories"))
	for _, c := range state.ByCategory(snap) {
		cats.WriteString(fmt.Sprintf("\n%s %-10s %d tasks, %d done", categoryIcon(c.Category), c.Category.Name, c.Total, c.Completed))
	}

	var recent strings.Builder
	recent.WriteString(headingStyle.Render("Recent Tasks"))
	for _, t := range state.Recent(snap.Tasks, recentLimit) {
		recent.WriteString("\n" + checkbox(t.Completed) + " " + t.Title + " " + mutedStyle.Render(t.CreatedAt.Format(state.DateLayout)))
	}

	var upcoming strings.Builder
	upcoming.WriteString(headingStyle.Render("Upcoming Deadlines"))
	next := state.Upcoming(snap.Tasks, today, upcomingLimit)
	if len(next) == 0 {
		upcoming.WriteString("\n" + mutedStyle.Render("Nothing due"))
	}
	for _, t := range next {
		upcoming.WriteString("\n" + state.FormatDate(t.DueDate) + "  " + t.Title)
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(progress), panelStyle.Render(cats.String())))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(recent.String()), panelStyle.Render(upcoming.String())))
	return b.String()
}

func renderCard(label string, value int, style lipgloss.Style) string {
	return cardStyle.Render(mutedStyle.Render(label) + "\n" + style.Bold(true).Render(fmt.Sprintf("%d", value)))
}

func (m Model) renderTasks() string {
	snap := m.store.State()
	today := m.today()
	visible := state.Visible(snap.Tasks, snap.Filter, today)

	var b strings.Builder
	b.WriteString(headingStyle.Render("Tasks"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d of %d • filter: %s", len(visible), len(snap.Tasks), describeFilter(snap.Filter))))
	b.WriteString("\n\n")

	if len(visible) == 0 {
		if snap.Filter.Active() {
			b.WriteString("No tasks match the filter.")
		} else {
			b.WriteString(fmt.Sprintf("No tasks yet. Press '%s' to add one.", m.cfg.Keys.Add))
		}
	}
	cursor := clampCursor(m.cursor, len(visible))
	for i, t := range visible {
		pointer := " "
		if i == cursor && m.mode == modeList {
			pointer = ">"
		}
		line := fmt.Sprintf("%s %s %s %s", pointer, checkbox(t.Completed), t.Title, renderPriority(t.Priority))
		if c, ok := snap.Category(t.Category); ok {
			line += " " + categoryIcon(c)
		}
		if t.HasDue() {
			due := "due " + state.FormatDate(t.DueDate)
			if state.IsOverdue(t, today) {
				due = overdueStyle.Render(due + " (overdue)")
			} else {
				due = mutedStyle.Render(due)
			}
			line += " " + due
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n---\n")
	switch m.mode {
	case modeForm:
		b.WriteString(m.renderForm())
		b.WriteString("\nField: " + m.form.currentLabel() + "\n")
		b.WriteString(m.input.View())
	case modeSearch, modeSubtask, modeCategory:
		b.WriteString(m.input.Placeholder + "\n")
		b.WriteString(m.input.View())
	default:
		if len(visible) == 0 {
			b.WriteString("No task selected")
		} else {
			b.WriteString(m.renderDetail(visible[cursor]))
		}
	}
	return b.String()
}

func (m Model) renderDetail(t state.Task) string {
	snap := m.store.State()
	category := t.Category
	if c, ok := snap.Category(t.Category); ok {
		category = categoryIcon(c) + " " + c.Name
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Title       : %s\n", t.Title))
	b.WriteString(fmt.Sprintf("Description : %s\n", emptyPlaceholder(t.Description)))
	b.WriteString(fmt.Sprintf("Status      : %s\n", humanDone(t.Completed)))
	b.WriteString(fmt.Sprintf("Priority    : %s\n", renderPriority(t.Priority)))
	b.WriteString(fmt.Sprintf("Category    : %s\n", emptyPlaceholder(category)))
	b.WriteString(fmt.Sprintf("Due         : %s\n", emptyPlaceholder(state.FormatDate(t.DueDate))))
	b.WriteString(fmt.Sprintf("Tags        : %s\n", emptyPlaceholder(strings.Join(t.Tags, ", "))))
	b.WriteString(fmt.Sprintf("Created     : %s\n", t.CreatedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Updated     : %s\n", t.UpdatedAt.Format("2006-01-02 15:04")))

	done := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			done++
		}
	}
	b.WriteString(fmt.Sprintf("Subtasks    : %d/%d\n", done, len(t.Subtasks)))
	sub := clampCursor(m.subCursor, len(t.Subtasks))
	for i, st := range t.Subtasks {
		pointer := " "
		if i == sub {
			pointer = "›"
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", pointer, checkbox(st.Completed), st.Title))
	}
	return b.String()
}

func (m Model) renderForm() string {
	if m.form == nil {
		return ""
	}
	title := "New task"
	if m.form.taskID != "" {
		title = "Edit task"
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render(title))
	b.WriteString("\n")
	for i, f := range m.form.fields {
		prefix := " "
		if i == m.form.index {
			prefix = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-34s : %s\n", prefix, f.Label, emptyPlaceholder(f.Value)))
	}
	return b.String()
}

func (m Model) renderAnalytics() string {
	snap := m.store.State()
	stats := state.ComputeStats(snap.Tasks, m.today())

	var b strings.Builder
	b.WriteString(headingStyle.Render("Analytics"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Completion rate  %s %3.0f%%\n", renderBar(stats.CompletionRate(), barWidth), stats.CompletionRate()*100))
	done, total := state.SubtaskProgress(snap.Tasks)
	subRate := 0.0
	if total > 0 {
		subRate = float64(done) / float64(total)
	}
	b.WriteString(fmt.Sprintf("Subtasks         %s %d/%d\n\n", renderBar(subRate, barWidth), done, total))

	b.WriteString(headingStyle.Render("By priority"))
	b.WriteString("\n")
	for _, p := range state.ByPriority(snap.Tasks) {
		share := 0.0
		if stats.Total > 0 {
			share = float64(p.Total) / float64(stats.Total)
		}
		b.WriteString(fmt.Sprintf("%-8s %s %d (%d open)\n", p.Priority, renderBar(share, barWidth), p.Total, p.Open))
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("By category"))
	b.WriteString("\n")
	for _, c := range state.ByCategory(snap) {
		rate := 0.0
		if c.Total > 0 {
			rate = float64(c.Completed) / float64(c.Total)
		}
		b.WriteString(fmt.Sprintf("%s %-10s %s %d/%d done\n", categoryIcon(c.Category), c.Category.Name, renderBar(rate, barWidth), c.Completed, c.Total))
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Tags"))
	b.WriteString("\n")
	tags := state.TagCounts(snap.Tasks)
	if len(tags) == 0 {
		b.WriteString(mutedStyle.Render("No tags yet"))
	}
	parts := make([]string, 0, tagLimit)
	for i, tc := range tags {
		if i == tagLimit {
			break
		}
		parts = append(parts, fmt.Sprintf("#%s (%d)", tc.Tag, tc.Count))
	}
	b.WriteString(strings.Join(parts, "  "))
	return b.String()
}

// renderBar draws a horizontal bar filled to rate in [0, 1].
func renderBar(rate float64, width int) string {
	filled := int(rate*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return doneStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

func renderPriority(p state.Priority) string {
	color, ok := priorityColors[p]
	if !ok {
		return "[" + string(p) + "]"
	}
	return lipgloss.NewStyle().Foreground(color).Render("[" + string(p) + "]")
}

func categoryIcon(c state.Category) string {
	if c.Icon == "" {
		return "•"
	}
	if c.Color == "" {
		return c.Icon
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(c.Icon)
}

func checkbox(done bool) string {
	if done {
		return doneStyle.Render("[x]")
	}
	return "[ ]"
}

func describeFilter(f state.Filter) string {
	if !f.Active() {
		return "none"
	}
	parts := make([]string, 0, 4)
	if f.Priority != "" {
		parts = append(parts, "priority="+f.Priority)
	}
	if f.Category != "" {
		parts = append(parts, "category="+f.Category)
	}
	if f.Status != "" {
		parts = append(parts, "status="+f.Status)
	}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.Search))
	}
	return strings.Join(parts, " ")
}

func emptyPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(empty)"
	}
	return v
}
