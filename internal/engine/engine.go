package engine

import "time"

// Engine owns all progress state: the quests, which one is active, and the
// running point total. It is not safe for concurrent use; the board drives it
// from a single update loop.
type Engine struct {
	levels []Level
	tasks  []Task

	active    int
	total     int
	completed int

	now func() time.Time
}

type Option func(*Engine)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New builds an engine over copies of levels and tasks. Every feat starts
// NotStarted regardless of the state it was passed in with.
func New(levels []Level, tasks []Task, opts ...Option) *Engine {
	e := &Engine{
		levels: append([]Level(nil), levels...),
		tasks:  make([]Task, len(tasks)),
		now:    time.Now,
	}
	for i, t := range tasks {
		c := t.clone()
		for j := range c.Subtasks {
			c.Subtasks[j].State = NotStarted
			c.Subtasks[j].StartedAt = time.Time{}
			c.Subtasks[j].Points = 0
		}
		e.tasks[i] = c
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Progress is a derived snapshot of the engine.
type Progress struct {
	Completed int
	Total     int
	Active    int
	Points    int
	Level     int
}

// Ratio is Completed/Total, or 0 for an empty catalog.
func (p Progress) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

func (e *Engine) Progress() Progress {
	return Progress{
		Completed: e.completed,
		Total:     e.totalSubtasks(),
		Active:    e.active,
		Points:    e.total,
		Level:     LevelFor(e.levels, e.total),
	}
}

func (e *Engine) Levels() []Level { return append([]Level(nil), e.levels...) }

// Tasks returns a deep copy of the quests.
func (e *Engine) Tasks() []Task {
	out := make([]Task, len(e.tasks))
	for i := range e.tasks {
		out[i] = e.tasks[i].clone()
	}
	return out
}

func (e *Engine) ActiveIndex() int { return e.active }

// Finished reports that the active index ran past the last quest.
func (e *Engine) Finished() bool { return e.active >= len(e.tasks) }

// ActiveTask returns a copy of the active quest, or nil once finished.
func (e *Engine) ActiveTask() *Task {
	if e.Finished() {
		return nil
	}
	t := e.tasks[e.active].clone()
	return &t
}

func (e *Engine) CurrentLevel() int { return LevelFor(e.levels, e.total) }

// Status places the quest at index relative to the active one.
func (e *Engine) Status(index int) TaskStatus {
	switch {
	case index < e.active:
		return TaskDone
	case index == e.active:
		return TaskActive
	default:
		return TaskLocked
	}
}

// Tick recomputes decayed points for every started feat of the active quest.
// It reports whether any value changed.
func (e *Engine) Tick(now time.Time) bool {
	if e.Finished() {
		return false
	}
	changed := false
	subs := e.tasks[e.active].Subtasks
	for i := range subs {
		if subs[i].State != Started {
			continue
		}
		pts := Decay(subs[i].StartedAt, now)
		if pts != subs[i].Points {
			subs[i].Points = pts
			changed = true
		}
	}
	return changed
}

func (e *Engine) totalSubtasks() int {
	n := 0
	for _, t := range e.tasks {
		n += len(t.Subtasks)
	}
	return n
}

func (e *Engine) countCompleted() int {
	n := 0
	for _, t := range e.tasks {
		for _, st := range t.Subtasks {
			if st.State == Completed {
				n++
			}
		}
	}
	return n
}

func (e *Engine) findTask(id int) int {
	for i := range e.tasks {
		if e.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func findSubtask(t *Task, id string) int {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == id {
			return i
		}
	}
	return -1
}
