package state

// Action is one state transition request. The set is closed: only the
// types in this file implement it.
type Action interface {
	Kind() string
	action()
}

type AddTask struct {
	Task Task
}

type UpdateTask struct {
	Task Task
}

type DeleteTask struct {
	ID string
}

type ToggleTask struct {
	ID string
}

type AddCategory struct {
	Category Category
}

type UpdateFilter struct {
	Patch FilterPatch
}

type AddSubtask struct {
	TaskID  string
	Subtask Subtask
}

type ToggleSubtask struct {
	TaskID    string
	SubtaskID string
}

func (AddTask) Kind() string       { return "add_task" }
func (UpdateTask) Kind() string    { return "update_task" }
func (DeleteTask) Kind() string    { return "delete_task" }
func (ToggleTask) Kind() string    { return "toggle_task" }
func (AddCategory) Kind() string   { return "add_category" }
func (UpdateFilter) Kind() string  { return "update_filter" }
func (AddSubtask) Kind() string    { return "add_subtask" }
func (ToggleSubtask) Kind() string { return "toggle_subtask" }

func (AddTask) action()       {}
func (UpdateTask) action()    {}
func (DeleteTask) action()    {}
func (ToggleTask) action()    {}
func (AddCategory) action()   {}
func (UpdateFilter) action()  {}
func (AddSubtask) action()    {}
func (ToggleSubtask) action() {}
