package state

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

type Stats struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
}

// CompletionRate is the completed share in [0, 1].
func (s Stats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

// ComputeStats counts tasks as of the calendar date of today.
func ComputeStats(tasks []Task, today time.Time) Stats {
	var st Stats
	st.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
			continue
		}
		st.Pending++
		if IsOverdue(t, today) {
			st.Overdue++
		}
	}
	return st
}

// IsOverdue reports whether t is open and due before today's date.
func IsOverdue(t Task, today time.Time) bool {
	return !t.Completed && t.HasDue() && dateKey(t.DueDate) < dateKey(today)
}

type CategoryCount struct {
	Category  Category
	Total     int
	Completed int
}

// ByCategory counts tasks per registered category, in registry order.
// Tasks pointing at an unregistered id follow, named after the raw id.
func ByCategory(s Snapshot) []CategoryCount {
	counts := make([]CategoryCount, 0, len(s.Categories))
	index := make(map[string]int, len(s.Categories))
	for _, c := range s.Categories {
		if _, dup := index[c.ID]; dup {
			continue
		}
		index[c.ID] = len(counts)
		counts = append(counts, CategoryCount{Category: c})
	}
	for _, t := range s.Tasks {
		i, ok := index[t.Category]
		if !ok {
			i = len(counts)
			index[t.Category] = i
			counts = append(counts, CategoryCount{Category: Category{ID: t.Category, Name: t.Category}})
		}
		counts[i].Total++
		if t.Completed {
			counts[i].Completed++
		}
	}
	return counts
}

type PriorityCount struct {
	Priority Priority
	Total    int
	Open     int
}

// ByPriority counts tasks per priority, lowest first. Tasks with a priority
// outside the enumeration are not counted.
func ByPriority(tasks []Task) []PriorityCount {
	counts := make([]PriorityCount, 0, 4)
	for _, p := range Priorities() {
		counts = append(counts, PriorityCount{Priority: p})
	}
	for _, t := range tasks {
		i := slices.Index(Priorities(), t.Priority)
		if i < 0 {
			continue
		}
		counts[i].Total++
		if !t.Completed {
			counts[i].Open++
		}
	}
	return counts
}

// Upcoming returns up to n open tasks due today or later, soonest first.
func Upcoming(tasks []Task, today time.Time, n int) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Completed || !t.HasDue() || dateKey(t.DueDate) < dateKey(today) {
			continue
		}
		out = append(out, t)
	}
	slices.SortStableFunc(out, func(a, b Task) int {
		return cmp.Compare(dateKey(a.DueDate), dateKey(b.DueDate))
	})
	return limit(out, n)
}

// Recent returns up to n tasks, newest first.
func Recent(tasks []Task, n int) []Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b Task) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return limit(out, n)
}

// SubtaskProgress counts completed and total subtasks across tasks.
func SubtaskProgress(tasks []Task) (done, total int) {
	for _, t := range tasks {
		for _, st := range t.Subtasks {
			total++
			if st.Completed {
				done++
			}
		}
	}
	return done, total
}

type TagCount struct {
	Tag   string
	Count int
}

// TagCounts returns tag usage, most used first and ties by name.
func TagCounts(tasks []Task) []TagCount {
	seen := map[string]int{}
	for _, t := range tasks {
		for _, tag := range t.Tags {
			seen[tag]++
		}
	}
	out := make([]TagCount, 0, len(seen))
	for tag, n := range seen {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	slices.SortFunc(out, func(a, b TagCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Tag, b.Tag)
	})
	return out
}

func limit(tasks []Task, n int) []Task {
	if n >= 0 && len(tasks) > n {
		return tasks[:n]
	}
	return tasks
}
