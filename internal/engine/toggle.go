package engine

import "time"

// Transition names what a toggle did to a feat.
type Transition string

const (
	TransitionNone      Transition = ""
	TransitionStarted   Transition = "started"
	TransitionCompleted Transition = "completed"
	TransitionReset     Transition = "reset"
)

type ToggleResult struct {
	Changed    bool
	Transition Transition
	TaskID     int
	SubtaskID  string
	// Points is what was started with, awarded, or taken back.
	Points       int
	TotalBefore  int
	TotalAfter   int
	Advanced     bool
	LevelBefore  int
	LevelAfter   int
	LevelChanged bool
	LevelUp      bool
}

// Toggle cycles a feat of the active quest through
// not-started -> started -> completed -> not-started.
// Toggling anything outside the active quest, or an unknown id, does nothing.
func (e *Engine) Toggle(taskID int, subtaskID string) ToggleResult {
	res := ToggleResult{TaskID: taskID, SubtaskID: subtaskID, TotalBefore: e.total, TotalAfter: e.total}

	ti := e.findTask(taskID)
	if ti < 0 || ti != e.active {
		return res
	}
	task := &e.tasks[ti]
	si := findSubtask(task, subtaskID)
	if si < 0 {
		return res
	}

	now := e.now()
	levelBefore := LevelFor(e.levels, e.total)
	st := &task.Subtasks[si]

	switch st.State {
	case NotStarted:
		st.State = Started
		st.StartedAt = now
		st.Points = StartPoints
		res.Transition = TransitionStarted
	case Started:
		st.Points = Decay(st.StartedAt, now)
		st.State = Completed
		e.total += st.Points
		res.Transition = TransitionCompleted
	case Completed:
		e.total -= st.Points
		res.Transition = TransitionReset
		res.Points = st.Points
		st.State = NotStarted
		st.StartedAt = time.Time{}
		st.Points = 0
	}
	if res.Transition != TransitionReset {
		res.Points = st.Points
	}
	res.Changed = true

	e.completed = e.countCompleted()
	if task.Done() {
		e.active++
		res.Advanced = true
	}

	res.TotalAfter = e.total
	res.LevelBefore = levelBefore
	res.LevelAfter = LevelFor(e.levels, e.total)
	res.LevelChanged = res.LevelAfter != res.LevelBefore
	res.LevelUp = res.LevelAfter > res.LevelBefore
	return res
}
