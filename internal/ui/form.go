package ui

import (
	"errors"
	"fmt"
	"strings"

	"taskflow/internal/state"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
	fieldCategory
	fieldDue
	fieldTags
)

type formField struct {
	Label string
	Value string
}

// formState backs the add/edit task form. taskID is empty for a new task.
type formState struct {
	taskID string
	fields []formField
	index  int
}

func newForm(task *state.Task, defaultCategory string) *formState {
	f := &formState{
		fields: []formField{
			{Label: "Title"},
			{Label: "Description"},
			{Label: "Priority (low/medium/high/urgent)"},
			{Label: "Category"},
			{Label: "Due (YYYY-MM-DD)"},
			{Label: "Tags (comma separated)"},
		},
	}
	if task == nil {
		f.fields[fieldPriority].Value = string(state.PriorityMedium)
		f.fields[fieldCategory].Value = defaultCategory
		return f
	}

	f.taskID = task.ID
	f.fields[fieldTitle].Value = task.Title
	f.fields[fieldDescription].Value = task.Description
	f.fields[fieldPriority].Value = string(task.Priority)
	f.fields[fieldCategory].Value = task.Category
	f.fields[fieldDue].Value = state.FormatDate(task.DueDate)
	f.fields[fieldTags].Value = strings.Join(task.Tags, ", ")
	return f
}

func (f *formState) currentLabel() string {
	return f.fields[f.index].Label
}

func (f *formState) currentValue() string {
	return f.fields[f.index].Value
}

func (f *formState) setCurrentValue(v string) {
	f.fields[f.index].Value = v
}

func (f *formState) last() bool {
	return f.index >= len(f.fields)-1
}

// apply copies the form values onto base. Fields the form does not edit
// (id, timestamps, completion, subtasks) are kept from base.
func (f *formState) apply(base state.Task) (state.Task, error) {
	title := strings.TrimSpace(f.fields[fieldTitle].Value)
	if title == "" {
		return state.Task{}, errors.New("title cannot be empty")
	}
	priority, err := state.ParsePriority(f.fields[fieldPriority].Value)
	if err != nil {
		return state.Task{}, err
	}
	due, err := state.ParseDate(f.fields[fieldDue].Value)
	if err != nil {
		return state.Task{}, fmt.Errorf("invalid due date: %w", err)
	}

	t := base.Clone()
	t.Title = title
	t.Description = strings.TrimSpace(f.fields[fieldDescription].Value)
	t.Priority = priority
	t.Category = strings.TrimSpace(f.fields[fieldCategory].Value)
	t.DueDate = due
	t.Tags = parseTags(f.fields[fieldTags].Value)
	return t, nil
}

// parseTags splits a comma separated list, dropping blanks and
// case-insensitive duplicates.
func parseTags(value string) []string {
	seen := make(map[string]struct{})
	result := []string{}
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

// slug turns a category name into its id.
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
