package state

import (
	"slices"
	"time"
)

// Reducer applies actions to snapshots. Now stamps UpdatedAt on mutated
// tasks; time.Now is used when it is nil.
type Reducer struct {
	Now func() time.Time
}

// Reduce applies a using the wall clock.
func Reduce(s Snapshot, a Action) Snapshot {
	return Reducer{}.Reduce(s, a)
}

// Reduce returns the snapshot that results from applying a to s. The input
// is never modified. Unknown actions and ids that match nothing return s
// unchanged.
func (r Reducer) Reduce(s Snapshot, a Action) Snapshot {
	switch a := a.(type) {
	case AddTask:
		s.Tasks = append(slices.Clip(s.Tasks), a.Task.Clone())
		return s
	case UpdateTask:
		return r.replaceTask(s, a.Task.ID, func(old Task) Task {
			next := a.Task.Clone()
			next.CreatedAt = old.CreatedAt
			next.UpdatedAt = r.now()
			return next
		})
	case DeleteTask:
		i := s.taskIndex(a.ID)
		if i < 0 {
			return s
		}
		s.Tasks = slices.Delete(slices.Clone(s.Tasks), i, i+1)
		return s
	case ToggleTask:
		return r.replaceTask(s, a.ID, func(t Task) Task {
			t.Completed = !t.Completed
			t.UpdatedAt = r.now()
			return t
		})
	case AddCategory:
		s.Categories = append(slices.Clip(s.Categories), a.Category)
		return s
	case UpdateFilter:
		s.Filter = s.Filter.merge(a.Patch)
		return s
	case AddSubtask:
		return r.replaceTask(s, a.TaskID, func(t Task) Task {
			t.Subtasks = append(slices.Clip(t.Subtasks), a.Subtask)
			t.UpdatedAt = r.now()
			return t
		})
	case ToggleSubtask:
		t, ok := s.Task(a.TaskID)
		if !ok {
			return s
		}
		j := slices.IndexFunc(t.Subtasks, func(st Subtask) bool { return st.ID == a.SubtaskID })
		if j < 0 {
			return s
		}
		return r.replaceTask(s, a.TaskID, func(t Task) Task {
			t.Subtasks = slices.Clone(t.Subtasks)
			t.Subtasks[j].Completed = !t.Subtasks[j].Completed
			t.UpdatedAt = r.now()
			return t
		})
	default:
		return s
	}
}

// replaceTask swaps the task with the given id for fn(task) in a copy of
// the task slice, keeping its position.
func (r Reducer) replaceTask(s Snapshot, id string, fn func(Task) Task) Snapshot {
	i := s.taskIndex(id)
	if i < 0 {
		return s
	}
	tasks := slices.Clone(s.Tasks)
	tasks[i] = fn(tasks[i])
	s.Tasks = tasks
	return s
}

func (r Reducer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
