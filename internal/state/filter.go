package state

import (
	"strings"
	"time"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusOverdue   = "overdue"
)

// Statuses lists the status values Visible understands.
func Statuses() []string {
	return []string{StatusPending, StatusCompleted, StatusOverdue}
}

// Visible returns the tasks matching f, in task order. Empty criteria match
// everything. An unknown status matches nothing.
func Visible(tasks []Task, f Filter, today time.Time) []Task {
	if !f.Active() {
		return tasks
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Priority != "" && string(t.Priority) != f.Priority {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Status != "" && !matchStatus(t, f.Status, today) {
			continue
		}
		if search != "" && !matchSearch(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchStatus(t Task, status string, today time.Time) bool {
	switch status {
	case StatusPending:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	case StatusOverdue:
		return IsOverdue(t, today)
	default:
		return false
	}
}

func matchSearch(t Task, needle string) bool {
	if strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
