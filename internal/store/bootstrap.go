package store

import (
	"log"
	"slices"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/state"
)

// Bootstrap builds the container the application starts with: the seed
// snapshot (or just the built-in categories when seeding is off), the extra
// categories from cfg and its default status filter.
func Bootstrap(cfg config.Config, opts ...Option) *Store {
	initial := state.Snapshot{Categories: state.DefaultCategories()}
	if cfg.Seed {
		initial = state.Initial()
	}
	s := New(initial, opts...)

	for _, c := range cfg.Categories {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			continue
		}
		if _, exists := s.State().Category(id); exists {
			continue
		}
		name := c.Name
		if name == "" {
			name = id
		}
		s.Dispatch(state.AddCategory{Category: state.Category{ID: id, Name: name, Color: c.Color, Icon: c.Icon}})
	}

	if status, ok := defaultStatus(cfg.DefaultFilter); ok {
		s.Dispatch(state.UpdateFilter{Patch: state.FilterPatch{Status: state.Set(status)}})
	}
	return s
}

// defaultStatus maps the configured default filter to a status filter value.
// "todo" and "done" are accepted as aliases. Unknown values are ignored.
func defaultStatus(v string) (string, bool) {
	status := strings.ToLower(strings.TrimSpace(v))
	switch status {
	case "", "all":
		return "", false
	case "todo":
		status = state.StatusPending
	case "done":
		status = state.StatusCompleted
	}
	if !slices.Contains(state.Statuses(), status) {
		log.Printf("ignoring unknown default_filter %q", v)
		return "", false
	}
	return status, true
}
