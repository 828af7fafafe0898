package state

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every priority in ascending order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

func ParsePriority(v string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(v)))
	if slices.Contains(Priorities(), p) {
		return p, nil
	}
	return "", fmt.Errorf("unknown priority %q", v)
}

type Subtask struct {
	ID        string
	Title     string
	Completed bool
}

type Task struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	Category    string
	DueDate     time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Tags        []string
	Subtasks    []Subtask
}

// HasDue reports whether a due date was set.
func (t Task) HasDue() bool {
	return !t.DueDate.IsZero()
}

// Clone returns a copy of t that shares no slices with it.
func (t Task) Clone() Task {
	t.Tags = slices.Clone(t.Tags)
	t.Subtasks = slices.Clone(t.Subtasks)
	return t
}

type Category struct {
	ID    string
	Name  string
	Color string
	Icon  string
}

type Filter struct {
	Priority string
	Category string
	Status   string
	Search   string
}

// FilterPatch carries the fields an Update Filter action replaces. Nil
// fields are left as they are.
type FilterPatch struct {
	Priority *string
	Category *string
	Status   *string
	Search   *string
}

// Set returns a pointer to v, for building a FilterPatch.
func Set(v string) *string {
	return &v
}

// ClearFilter resets every criterion.
func ClearFilter() FilterPatch {
	return FilterPatch{Priority: Set(""), Category: Set(""), Status: Set(""), Search: Set("")}
}

func (f Filter) merge(p FilterPatch) Filter {
	if p.Priority != nil {
		f.Priority = *p.Priority
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.Status != nil {
		f.Status = *p.Status
	}
	if p.Search != nil {
		f.Search = *p.Search
	}
	return f
}

// Active reports whether any criterion is set.
func (f Filter) Active() bool {
	return f != Filter{}
}

// Snapshot is the complete state at one point in time. Values returned by
// the container must be treated as read-only.
type Snapshot struct {
	Tasks      []Task
	Categories []Category
	Filter     Filter
}

func (s Snapshot) Task(id string) (Task, bool) {
	i := s.taskIndex(id)
	if i < 0 {
		return Task{}, false
	}
	return s.Tasks[i], true
}

func (s Snapshot) Category(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func (s Snapshot) taskIndex(id string) int {
	return slices.IndexFunc(s.Tasks, func(t Task) bool { return t.ID == id })
}

// ParseDate parses a YYYY-MM-DD calendar date. An empty value yields the
// zero time, meaning no due date.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, v)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Today truncates now to its calendar date.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// dateKey compares calendar dates regardless of location.
func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
