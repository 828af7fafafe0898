package state

import (
	"testing"
	"time"
)

func TestComputeStats(t *testing.T) {
	today := time.Date(2024, time.January, 13, 15, 0, 0, 0, time.Local)
	tasks := []Task{
		{ID: "a", DueDate: seedDate(2024, time.January, 12)},
		{ID: "b", DueDate: seedDate(2024, time.January, 13)},
		{ID: "c", DueDate: seedDate(2024, time.January, 1), Completed: true},
		{ID: "d"},
	}

	got := ComputeStats(tasks, today)
	want := Stats{Total: 4, Completed: 1, Pending: 3, Overdue: 1}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if rate := got.CompletionRate(); rate != 0.25 {
		t.Fatalf("expected completion rate 0.25, got %v", rate)
	}
	if rate := (Stats{}).CompletionRate(); rate != 0 {
		t.Fatalf("expected completion rate 0 for no tasks, got %v", rate)
	}
}

func TestByCategoryReportsDanglingIDs(t *testing.T) {
	s := Initial()
	s = Reduce(s, AddTask{Task: Task{ID: "3", Category: "errands", Completed: true}})
	s = Reduce(s, AddTask{Task: Task{ID: "4", Category: "work"}})

	counts := ByCategory(s)
	if len(counts) != 5 {
		t.Fatalf("expected 5 category rows, got %d", len(counts))
	}
	if counts[0].Category.ID != "work" || counts[0].Total != 2 {
		t.Fatalf("expected 2 work tasks, got %+v", counts[0])
	}
	if counts[2].Category.ID != "health" || counts[2].Total != 0 {
		t.Fatalf("expected empty health row, got %+v", counts[2])
	}
	last := counts[4]
	if last.Category.ID != "errands" || last.Category.Name != "errands" || last.Completed != 1 {
		t.Fatalf("expected dangling errands row, got %+v", last)
	}
}

func TestByPriority(t *testing.T) {
	tasks := []Task{
		{Priority: PriorityHigh},
		{Priority: PriorityHigh, Completed: true},
		{Priority: PriorityUrgent},
		{Priority: "someday"},
	}
	counts := ByPriority(tasks)
	if len(counts) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(counts))
	}
	if counts[2].Priority != PriorityHigh || counts[2].Total != 2 || counts[2].Open != 1 {
		t.Fatalf("unexpected high row %+v", counts[2])
	}
	if counts[3].Total != 1 {
		t.Fatalf("unexpected urgent row %+v", counts[3])
	}
}

func TestUpcomingAndRecent(t *testing.T) {
	today := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: "late", DueDate: seedDate(2024, time.January, 9), CreatedAt: seedDate(2024, time.January, 1)},
		{ID: "far", DueDate: seedDate(2024, time.February, 1), CreatedAt: seedDate(2024, time.January, 3)},
		{ID: "today", DueDate: seedDate(2024, time.January, 10), CreatedAt: seedDate(2024, time.January, 2)},
		{ID: "done", DueDate: seedDate(2024, time.January, 11), Completed: true, CreatedAt: seedDate(2024, time.January, 4)},
		{ID: "nodue", CreatedAt: seedDate(2024, time.January, 5)},
	}

	up := Upcoming(tasks, today, 5)
	if len(up) != 2 || up[0].ID != "today" || up[1].ID != "far" {
		t.Fatalf("unexpected upcoming %+v", ids(up))
	}
	if got := Upcoming(tasks, today, 1); len(got) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(got))
	}

	recent := Recent(tasks, 2)
	if len(recent) != 2 || recent[0].ID != "nodue" || recent[1].ID != "done" {
		t.Fatalf("unexpected recent %v", ids(recent))
	}
	if tasks[0].ID != "late" {
		t.Fatalf("Recent reordered its input")
	}
}

func TestSubtaskProgressAndTags(t *testing.T) {
	s := Initial()
	done, total := SubtaskProgress(s.Tasks)
	if done != 1 || total != 3 {
		t.Fatalf("expected 1/3 subtasks, got %d/%d", done, total)
	}

	s = Reduce(s, AddTask{Task: Task{ID: "3", Tags: []string{"weekend", "garden"}}})
	tags := TagCounts(s.Tasks)
	if tags[0].Tag != "weekend" || tags[0].Count != 2 {
		t.Fatalf("expected weekend first, got %+v", tags[0])
	}
	if tags[1].Tag != "garden" {
		t.Fatalf("expected ties sorted by name, got %+v", tags[1])
	}
}

func ids(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
