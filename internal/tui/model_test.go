package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epicquest/internal/engine"
)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBoard(t *testing.T) (boardModel, *engine.Engine, *testClock) {
	t.Helper()
	clk := &testClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	levels := []engine.Level{
		{Name: "Novice", Icon: "shield", Threshold: 0, Achievement: "first steps"},
		{Name: "Apprentice", Icon: "sword", Threshold: 150, Achievement: "training dummy"},
	}
	tasks := []engine.Task{
		{ID: 1, Title: "Keywords", Description: "keyword realm", Subtasks: []engine.Subtask{{ID: "1.1", Title: "Input"}, {ID: "1.2", Title: "Button"}}},
		{ID: 2, Title: "Dashboard", Subtasks: []engine.Subtask{{ID: "2.1", Title: "Field"}}},
	}
	eng := engine.New(levels, tasks, engine.WithClock(clk.Now))
	m := newBoardModel(eng, Options{TickInterval: time.Second, OverlayDuration: 3 * time.Second, Now: clk.Now})
	return m, eng, clk
}

func send(t *testing.T, m boardModel, msg tea.Msg) (boardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(boardModel)
	require.True(t, ok)
	return bm, cmd
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
)

func TestToggleStartAndComplete(t *testing.T) {
	m, eng, clk := newTestBoard(t)

	m, _ = send(t, m, keySpace)
	assert.Equal(t, engine.Started, eng.Tasks()[0].Subtasks[0].State)
	assert.Contains(t, m.lastLog, "Started 1.1")

	clk.Advance(7 * time.Second)
	m, _ = send(t, m, tickMsg{gen: m.tickGen})
	assert.Equal(t, 93, eng.Tasks()[0].Subtasks[0].Points)
	assert.Contains(t, m.View(), "93 pts")

	m, _ = send(t, m, keySpace)
	assert.Equal(t, 93, eng.Progress().Points)
	assert.Contains(t, m.lastLog, "+93 pts")
	assert.Contains(t, m.View(), "Feats Accomplished: 1 / 3 | Total Points: 93")
}

func TestAdvanceMovesCursorAndRestartsTick(t *testing.T) {
	m, eng, _ := newTestBoard(t)
	gen := m.tickGen

	m, _ = send(t, m, keySpace)
	m, _ = send(t, m, keySpace)
	m, _ = send(t, m, keyDown)
	m, _ = send(t, m, keySpace)
	m, cmd := send(t, m, keySpace)

	require.Equal(t, 1, eng.ActiveIndex())
	assert.Equal(t, gen+1, m.tickGen)
	assert.Equal(t, 2, m.selected, "cursor should land on the first feat of quest 2")
	assert.NotNil(t, cmd)

	// A tick from the old chain is dropped without scheduling another.
	_, cmd = send(t, m, tickMsg{gen: gen})
	assert.Nil(t, cmd)

	_, cmd = send(t, m, tickMsg{gen: m.tickGen})
	assert.NotNil(t, cmd)
}

func TestLevelChangeShowsOverlay(t *testing.T) {
	m, _, _ := newTestBoard(t)

	m, _ = send(t, m, keySpace)
	m, _ = send(t, m, keySpace)
	assert.Nil(t, m.overlay, "100 points stays Novice")

	m, _ = send(t, m, keyDown)
	m, _ = send(t, m, keySpace)
	m, _ = send(t, m, keySpace)
	require.NotNil(t, m.overlay)
	assert.True(t, m.overlay.up)
	assert.Equal(t, "Apprentice", m.overlay.level.Name)

	view := m.View()
	assert.Contains(t, view, "Level Up!")
	assert.Contains(t, view, "training dummy")

	// A stale expiry does not hide the current overlay.
	m, _ = send(t, m, overlayDoneMsg{seq: m.overlay.seq - 1})
	require.NotNil(t, m.overlay)

	m, _ = send(t, m, overlayDoneMsg{seq: m.overlay.seq})
	assert.Nil(t, m.overlay)
	assert.NotContains(t, m.View(), "Level Up!")
}

func TestOverlayExpiresAfterConfiguredDuration(t *testing.T) {
	m, _, _ := newTestBoard(t)
	assert.Equal(t, 3*time.Second, m.overlayDuration)

	clk := &testClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	eng := engine.New(
		[]engine.Level{{Name: "Novice", Threshold: 0}, {Name: "Apprentice", Threshold: 100, Achievement: "training dummy"}},
		[]engine.Task{{ID: 1, Title: "Keywords", Subtasks: []engine.Subtask{{ID: "1.1", Title: "Input"}, {ID: "1.2", Title: "Button"}}}},
		engine.WithClock(clk.Now),
	)
	m = newBoardModel(eng, Options{TickInterval: time.Second, OverlayDuration: 5 * time.Millisecond, Now: clk.Now})
	assert.Equal(t, 5*time.Millisecond, m.overlayDuration)

	m, _ = send(t, m, keySpace)
	m, cmd := send(t, m, keySpace)
	require.NotNil(t, m.overlay)
	require.NotNil(t, cmd)

	start := time.Now()
	msg := m.overlayCmd(m.overlay.seq)()
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
	assert.Equal(t, overlayDoneMsg{seq: m.overlay.seq}, msg)

	m, _ = send(t, m, msg)
	assert.Nil(t, m.overlay)
}

func TestToggleLockedQuestIsNoop(t *testing.T) {
	m, eng, _ := newTestBoard(t)

	m, _ = send(t, m, keyDown)
	m, _ = send(t, m, keyDown)
	require.Equal(t, 2, m.selected)

	before := eng.Progress()
	m, _ = send(t, m, keySpace)
	assert.Equal(t, before, eng.Progress())
	assert.Equal(t, engine.NotStarted, eng.Tasks()[1].Subtasks[0].State)
	assert.Contains(t, m.lastLog, "locked")
}

func TestCursorBounds(t *testing.T) {
	m, _, _ := newTestBoard(t)

	m, _ = send(t, m, keyUp)
	assert.Equal(t, 0, m.selected)
	for i := 0; i < 10; i++ {
		m, _ = send(t, m, keyDown)
	}
	assert.Equal(t, 2, m.selected)
}

func TestFinishShowsCompletion(t *testing.T) {
	m, eng, _ := newTestBoard(t)
	gen := m.tickGen
	var cmd tea.Cmd
	for i := 0; i < 3; i++ {
		m, _ = send(t, m, keySpace)
		m, cmd = send(t, m, keySpace)
		if i == 0 {
			m, _ = send(t, m, keyDown)
		}
	}
	require.True(t, eng.Finished())
	assert.Contains(t, m.View(), "All quests complete!")

	// No tick chain outlives the last quest.
	assert.Equal(t, gen+2, m.tickGen)
	assert.Nil(t, cmd, "finishing without a level change schedules nothing")
	_, cmd = send(t, m, tickMsg{gen: m.tickGen})
	assert.Nil(t, cmd)

	// Toggling a done quest leaves the total alone.
	total := eng.Progress().Points
	m, _ = send(t, m, keySpace)
	assert.Equal(t, total, eng.Progress().Points)
	assert.Contains(t, m.lastLog, "already complete")
}

func TestQuitAndHelp(t *testing.T) {
	m, _, _ := newTestBoard(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.True(t, m.help.ShowAll)

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewRendersCards(t *testing.T) {
	m, _, _ := newTestBoard(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Your Epic Quest Progress")
	assert.Contains(t, view, "Novice")
	assert.Contains(t, view, "Apprentice")
	assert.Contains(t, view, "Keywords")
	assert.Contains(t, view, "keyword realm")
	assert.Contains(t, view, "Dashboard")
	assert.Contains(t, view, "Feats Accomplished: 0 / 3")
}
