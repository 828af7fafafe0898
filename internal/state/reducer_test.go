package state

import (
	"reflect"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAddTaskAppends(t *testing.T) {
	before := Initial()
	task := Task{ID: "3", Title: "Write report", Priority: PriorityLow, Category: "work"}

	after := Reduce(before, AddTask{Task: task})

	if len(after.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(after.Tasks))
	}
	if !reflect.DeepEqual(after.Tasks[:2], before.Tasks) {
		t.Fatalf("expected existing tasks to be unchanged")
	}
	if !reflect.DeepEqual(after.Tasks[2], task) {
		t.Fatalf("expected last task to be the added one, got %+v", after.Tasks[2])
	}
	if !reflect.DeepEqual(after.Categories, before.Categories) || after.Filter != before.Filter {
		t.Fatalf("expected categories and filter to be unchanged")
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := Initial()
	pristine := Initial()
	r := Reducer{Now: fixedClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))}

	actions := []Action{
		AddTask{Task: Task{ID: "3"}},
		UpdateTask{Task: Task{ID: "1", Title: "Changed"}},
		DeleteTask{ID: "1"},
		ToggleTask{ID: "2"},
		AddCategory{Category: Category{ID: "home"}},
		UpdateFilter{Patch: FilterPatch{Search: Set("x")}},
		AddSubtask{TaskID: "1", Subtask: Subtask{ID: "s4"}},
		ToggleSubtask{TaskID: "1", SubtaskID: "s1"},
	}
	for _, a := range actions {
		t.Run(a.Kind(), func(t *testing.T) {
			_ = r.Reduce(before, a)
			if !reflect.DeepEqual(before, pristine) {
				t.Fatalf("%s mutated its input snapshot", a.Kind())
			}
		})
	}
}

func TestAppendDoesNotLeakIntoSiblingSnapshots(t *testing.T) {
	base := Reduce(Snapshot{}, AddTask{Task: Task{ID: "a"}})
	left := Reduce(base, AddTask{Task: Task{ID: "b"}})
	right := Reduce(base, AddTask{Task: Task{ID: "c"}})

	if left.Tasks[1].ID != "b" || right.Tasks[1].ID != "c" {
		t.Fatalf("expected independent snapshots, got %q and %q", left.Tasks[1].ID, right.Tasks[1].ID)
	}
}

func TestToggleTaskTwiceRestoresFlag(t *testing.T) {
	first := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)

	s := Initial()
	s = Reducer{Now: fixedClock(first)}.Reduce(s, ToggleTask{ID: "1"})
	task, _ := s.Task("1")
	if !task.Completed {
		t.Fatalf("expected task to be completed after first toggle")
	}
	if !task.UpdatedAt.Equal(first) {
		t.Fatalf("expected UpdatedAt %v, got %v", first, task.UpdatedAt)
	}

	s = Reducer{Now: fixedClock(second)}.Reduce(s, ToggleTask{ID: "1"})
	task, _ = s.Task("1")
	if task.Completed {
		t.Fatalf("expected task to be pending after second toggle")
	}
	if !task.UpdatedAt.Equal(second) {
		t.Fatalf("expected UpdatedAt %v, got %v", second, task.UpdatedAt)
	}
	if task.UpdatedAt.Before(task.CreatedAt) {
		t.Fatalf("UpdatedAt precedes CreatedAt")
	}
}

func TestDeleteTaskIsIdempotent(t *testing.T) {
	once := Reduce(Initial(), DeleteTask{ID: "1"})
	twice := Reduce(once, DeleteTask{ID: "1"})

	if len(once.Tasks) != 1 || once.Tasks[0].ID != "2" {
		t.Fatalf("expected only task 2 to remain, got %+v", once.Tasks)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected second delete to be a no-op")
	}
}

func TestUpdateFilterMergesPartially(t *testing.T) {
	s := Reduce(Initial(), UpdateFilter{Patch: FilterPatch{
		Priority: Set("high"),
		Category: Set("work"),
		Status:   Set("pending"),
		Search:   Set("proposal"),
	}})

	s = Reduce(s, UpdateFilter{Patch: FilterPatch{Search: Set("grocery")}})

	want := Filter{Priority: "high", Category: "work", Status: "pending", Search: "grocery"}
	if s.Filter != want {
		t.Fatalf("expected filter %+v, got %+v", want, s.Filter)
	}

	s = Reduce(s, UpdateFilter{Patch: ClearFilter()})
	if s.Filter.Active() {
		t.Fatalf("expected filter to be cleared, got %+v", s.Filter)
	}
}

func TestAbsentIDsAreNoOps(t *testing.T) {
	before := Initial()
	tests := []struct {
		name   string
		action Action
	}{
		{"update", UpdateTask{Task: Task{ID: "missing", Title: "x"}}},
		{"delete", DeleteTask{ID: "missing"}},
		{"toggle", ToggleTask{ID: "missing"}},
		{"add subtask", AddSubtask{TaskID: "missing", Subtask: Subtask{ID: "s9"}}},
		{"toggle subtask unknown task", ToggleSubtask{TaskID: "missing", SubtaskID: "s1"}},
		{"toggle subtask unknown subtask", ToggleSubtask{TaskID: "1", SubtaskID: "missing"}},
		{"nil action", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after := Reduce(before, tt.action)
			if !reflect.DeepEqual(after, before) {
				t.Fatalf("expected snapshot to be unchanged")
			}
		})
	}
}

func TestUpdateTaskReplacesInPlace(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := Initial()
	edited := s.Tasks[0].Clone()
	edited.Title = "Ship Project Proposal"
	edited.CreatedAt = now.Add(time.Hour)

	s = Reducer{Now: fixedClock(now)}.Reduce(s, UpdateTask{Task: edited})

	if s.Tasks[0].ID != "1" || s.Tasks[0].Title != "Ship Project Proposal" {
		t.Fatalf("expected task 1 to be replaced at index 0, got %+v", s.Tasks[0])
	}
	if !s.Tasks[0].CreatedAt.Equal(Initial().Tasks[0].CreatedAt) {
		t.Fatalf("expected CreatedAt to be kept, got %v", s.Tasks[0].CreatedAt)
	}
	if !s.Tasks[0].UpdatedAt.Equal(now) {
		t.Fatalf("expected UpdatedAt %v, got %v", now, s.Tasks[0].UpdatedAt)
	}
	if s.Tasks[1].ID != "2" {
		t.Fatalf("expected task order to be preserved")
	}
}

func TestSubtaskActions(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	r := Reducer{Now: fixedClock(now)}

	s := r.Reduce(Initial(), AddSubtask{TaskID: "2", Subtask: Subtask{ID: "s1", Title: "Buy wine"}})
	task, _ := s.Task("2")
	if len(task.Subtasks) != 1 || task.Subtasks[0].Title != "Buy wine" {
		t.Fatalf("expected subtask to be appended, got %+v", task.Subtasks)
	}
	if !task.UpdatedAt.Equal(now) {
		t.Fatalf("expected UpdatedAt to be refreshed")
	}

	// Subtask ids are scoped to their task: s1 exists on task 1 and task 2.
	s = r.Reduce(s, ToggleSubtask{TaskID: "2", SubtaskID: "s1"})
	task, _ = s.Task("2")
	if !task.Subtasks[0].Completed {
		t.Fatalf("expected subtask on task 2 to be completed")
	}
	other, _ := s.Task("1")
	if !other.Subtasks[0].Completed {
		t.Fatalf("expected subtask s1 on task 1 to keep its state")
	}

	s = r.Reduce(s, ToggleSubtask{TaskID: "1", SubtaskID: "s1"})
	other, _ = s.Task("1")
	if other.Subtasks[0].Completed {
		t.Fatalf("expected subtask s1 on task 1 to be reopened")
	}
}

func TestAddCategoryDoesNotCheckUniqueness(t *testing.T) {
	s := Reduce(Initial(), AddCategory{Category: Category{ID: "work", Name: "Work again"}})
	if len(s.Categories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(s.Categories))
	}
	if s.Categories[4].Name != "Work again" {
		t.Fatalf("expected duplicate category to be appended last")
	}
}

func TestDashboardExample(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	r := Reducer{Now: fixedClock(now)}
	today := Today(now)

	s := Initial()
	if got := ComputeStats(s.Tasks, today).Completed; got != 0 {
		t.Fatalf("expected 0 completed, got %d", got)
	}

	s = r.Reduce(s, AddTask{Task: Task{ID: "3", Title: "New", CreatedAt: now, UpdatedAt: now}})
	if len(s.Tasks) != 3 || s.Tasks[2].ID != "3" {
		t.Fatalf("expected task 3 to be appended")
	}

	s = r.Reduce(s, ToggleTask{ID: "1"})
	task, _ := s.Task("1")
	if !task.Completed || !task.UpdatedAt.Equal(now) {
		t.Fatalf("expected task 1 to be completed and stamped, got %+v", task)
	}
	if got := ComputeStats(s.Tasks, today).Completed; got != 1 {
		t.Fatalf("expected 1 completed, got %d", got)
	}
}
