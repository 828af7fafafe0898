package state

import "time"

// Initial returns the snapshot the application boots with: two sample
// tasks and the four built-in categories.
func Initial() Snapshot {
	return Snapshot{
		Tasks: []Task{
			{
				ID:          "1",
				Title:       "Complete Project Proposal",
				Description: "Finalize the Q1 project proposal with budget estimates",
				Priority:    PriorityHigh,
				Category:    "work",
				DueDate:     seedDate(2024, time.January, 15),
				CreatedAt:   seedDate(2024, time.January, 1),
				UpdatedAt:   seedDate(2024, time.January, 1),
				Tags:        []string{"proposal", "urgent"},
				Subtasks: []Subtask{
					{ID: "s1", Title: "Research requirements", Completed: true},
					{ID: "s2", Title: "Draft initial proposal"},
					{ID: "s3", Title: "Review with team"},
				},
			},
			{
				ID:          "2",
				Title:       "Grocery Shopping",
				Description: "Buy ingredients for weekend dinner party",
				Priority:    PriorityMedium,
				Category:    "personal",
				DueDate:     seedDate(2024, time.January, 12),
				CreatedAt:   seedDate(2024, time.January, 2),
				UpdatedAt:   seedDate(2024, time.January, 2),
				Tags:        []string{"shopping", "weekend"},
				Subtasks:    []Subtask{},
			},
		},
		Categories: DefaultCategories(),
	}
}

func DefaultCategories() []Category {
	return []Category{
		{ID: "work", Name: "Work", Color: "#3B82F6", Icon: "💼"},
		{ID: "personal", Name: "Personal", Color: "#22C55E", Icon: "🏠"},
		{ID: "health", Name: "Health", Color: "#EF4444", Icon: "❤️"},
		{ID: "learning", Name: "Learning", Color: "#A855F7", Icon: "📚"},
	}
}

func seedDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
