package engine

import "time"

// SubtaskState is the lifecycle of a single feat.
type SubtaskState int

const (
	NotStarted SubtaskState = iota
	Started
	Completed
)

func (s SubtaskState) IsValid() bool {
	switch s {
	case NotStarted, Started, Completed:
		return true
	default:
		return false
	}
}

func (s SubtaskState) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Started:
		return "started"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Subtask is a feat inside a quest. StartedAt is set whenever State is not NotStarted.
type Subtask struct {
	ID        string
	Title     string
	State     SubtaskState
	StartedAt time.Time
	Points    int
}

// Task is a quest: an ordered list of feats completed one quest at a time.
type Task struct {
	ID          int
	Title       string
	Description string
	Subtasks    []Subtask
}

// Done reports whether every feat of the task is completed.
// A task with no feats is never done.
func (t Task) Done() bool {
	if len(t.Subtasks) == 0 {
		return false
	}
	for _, st := range t.Subtasks {
		if st.State != Completed {
			return false
		}
	}
	return true
}

func (t Task) clone() Task {
	out := t
	out.Subtasks = append([]Subtask(nil), t.Subtasks...)
	return out
}

// TaskStatus is the board-facing state of a quest relative to the active index.
type TaskStatus string

const (
	TaskDone   TaskStatus = "done"
	TaskActive TaskStatus = "active"
	TaskLocked TaskStatus = "locked"
)
