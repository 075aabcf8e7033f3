package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"epicquest/internal/engine"
	"epicquest/internal/ui"
)

type boardModel struct {
	eng *engine.Engine
	log *log.Logger
	now func() time.Time

	tickInterval    time.Duration
	overlayDuration time.Duration

	width  int
	height int

	keys keyMap
	help help.Model
	bar  progress.Model

	selected int

	// tickGen is bumped whenever the active quest changes; ticks from an
	// older generation are dropped so only one decay chain is ever live.
	tickGen int

	overlay    *overlayState
	overlaySeq int

	lastLog string
}

type overlayState struct {
	seq   int
	up    bool
	level engine.Level
}

type tickMsg struct {
	gen int
}

type overlayDoneMsg struct {
	seq int
}

// featLine is one selectable row: a feat of some quest.
type featLine struct {
	taskIndex int
	taskID    int
	subtaskID string
}

func newBoardModel(eng *engine.Engine, opts Options) boardModel {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.OverlayDuration <= 0 {
		opts.OverlayDuration = 3 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := boardModel{
		eng:             eng,
		log:             opts.Logger,
		now:             opts.Now,
		tickInterval:    opts.TickInterval,
		overlayDuration: opts.OverlayDuration,
		keys:            defaultKeyMap(),
		help:            help.New(),
		bar:             progress.New(progress.WithSolidFill(ui.GoldColor), progress.WithWidth(40)),
		lastLog:         "Choose a feat and press space to begin.",
	}
	m.selected = m.firstActiveLine()
	return m
}

func (m boardModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m boardModel) tickCmd() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.tickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m boardModel) overlayCmd(seq int) tea.Cmd {
	return tea.Tick(m.overlayDuration, func(time.Time) tea.Msg {
		return overlayDoneMsg{seq: seq}
	})
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		w := msg.Width - 4
		if w > 60 {
			w = 60
		}
		if w < 10 {
			w = 10
		}
		m.bar.Width = w
		return m, nil
	case tickMsg:
		if msg.gen != m.tickGen || m.eng.Finished() {
			return m, nil
		}
		m.eng.Tick(m.now())
		return m, m.tickCmd()
	case overlayDoneMsg:
		if m.overlay != nil && m.overlay.seq == msg.seq {
			m.overlay = nil
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.featLines())-1 {
				m.selected++
			}
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			return m.toggleSelected()
		}
	}
	return m, nil
}

func (m boardModel) toggleSelected() (tea.Model, tea.Cmd) {
	lines := m.featLines()
	if m.selected < 0 || m.selected >= len(lines) {
		return m, nil
	}
	line := lines[m.selected]

	res := m.eng.Toggle(line.taskID, line.subtaskID)
	if !res.Changed {
		switch m.eng.Status(line.taskIndex) {
		case engine.TaskDone:
			m.lastLog = "That quest is already complete."
		default:
			m.lastLog = "That quest is locked. Finish the active quest first."
		}
		return m, nil
	}

	m.log.Info("feat toggled", "task", res.TaskID, "feat", res.SubtaskID, "transition", string(res.Transition), "points", res.Points, "total", res.TotalAfter)
	switch res.Transition {
	case engine.TransitionStarted:
		m.lastLog = fmt.Sprintf("Started %s. The clock is ticking!", res.SubtaskID)
	case engine.TransitionCompleted:
		m.lastLog = fmt.Sprintf("Completed %s: +%d pts", res.SubtaskID, res.Points)
	case engine.TransitionReset:
		m.lastLog = fmt.Sprintf("Reset %s: -%d pts", res.SubtaskID, res.Points)
	}

	var cmds []tea.Cmd
	if res.Advanced {
		m.tickGen++
		m.selected = m.firstActiveLine()
		if m.eng.Finished() {
			m.log.Info("all quests complete", "total", res.TotalAfter)
		} else {
			cmds = append(cmds, m.tickCmd())
			m.log.Info("quest advanced", "active", m.eng.ActiveIndex())
		}
	}
	if res.LevelChanged {
		levels := m.eng.Levels()
		m.overlaySeq++
		m.overlay = &overlayState{seq: m.overlaySeq, up: res.LevelUp, level: levels[res.LevelAfter]}
		cmds = append(cmds, m.overlayCmd(m.overlaySeq))
		m.log.Info("level changed", "from", levels[res.LevelBefore].Name, "to", levels[res.LevelAfter].Name, "up", res.LevelUp)
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m boardModel) featLines() []featLine {
	var out []featLine
	for i, t := range m.eng.Tasks() {
		for _, st := range t.Subtasks {
			out = append(out, featLine{taskIndex: i, taskID: t.ID, subtaskID: st.ID})
		}
	}
	return out
}

// firstActiveLine is the row of the active quest's first feat, or the last row once finished.
func (m boardModel) firstActiveLine() int {
	lines := m.featLines()
	active := m.eng.ActiveIndex()
	for i, l := range lines {
		if l.taskIndex == active {
			return i
		}
	}
	if len(lines) == 0 {
		return 0
	}
	return len(lines) - 1
}

func (m boardModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	if m.overlay != nil {
		b.WriteString(m.renderOverlay())
	} else {
		b.WriteString(m.renderCards())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderHeader() string {
	p := m.eng.Progress()
	levels := m.eng.Levels()

	strip := make([]string, 0, len(levels))
	for i, l := range levels {
		style := ui.Muted
		if i <= p.Level {
			style = ui.Gold
		}
		strip = append(strip, style.Render(ui.LevelIcon(l.Icon)+" "+l.Name))
	}

	levelName := ""
	if p.Level < len(levels) {
		levelName = levels[p.Level].Name
	}
	stats := fmt.Sprintf("Feats Accomplished: %d / %d | Total Points: %d | Level: %s", p.Completed, p.Total, p.Points, levelName)

	return strings.Join([]string{
		ui.Heading(ui.IconScroll, "Your Epic Quest Progress"),
		strings.Join(strip, "  "),
		m.bar.ViewAs(p.Ratio()),
		stats,
	}, "\n")
}

func (m boardModel) renderCards() string {
	lines := m.featLines()
	row := 0
	var cards []string
	for i, t := range m.eng.Tasks() {
		status := m.eng.Status(i)

		var body []string
		body = append(body, ui.PanelTitle.Render(ui.StatusIcon(string(status))+" "+t.Title)+" "+ui.StatusText(string(status)))
		if t.Description != "" {
			body = append(body, ui.Muted.Render(t.Description))
		}
		for _, st := range t.Subtasks {
			cursor := "  "
			if row == m.selected && row < len(lines) {
				cursor = ui.SelectedRow.Render("> ")
			}
			row++
			body = append(body, cursor+renderFeat(st))
		}

		style := ui.Panel
		switch status {
		case engine.TaskActive:
			style = ui.ActivePanel
		case engine.TaskLocked:
			style = ui.LockedPanel
		}
		if m.width > 4 {
			style = style.Width(m.width - 4)
		}
		cards = append(cards, style.Render(strings.Join(body, "\n")))
	}
	return strings.Join(cards, "\n")
}

func renderFeat(st engine.Subtask) string {
	switch st.State {
	case engine.Started:
		return ui.IconRunning + " " + st.Title + " " + ui.Warn.Render(fmt.Sprintf("%s %d pts", ui.IconClock, st.Points))
	case engine.Completed:
		return ui.Good.Render(ui.IconChecked) + " " + ui.Done.Render(st.Title) + " " + ui.Good.Render(fmt.Sprintf("+%d pts", st.Points))
	default:
		return ui.IconTodo + " " + st.Title
	}
}

func (m boardModel) renderOverlay() string {
	badge := ui.BadgeLevelUp
	if !m.overlay.up {
		badge = ui.BadgeLevelDown
	}
	l := m.overlay.level
	panel := ui.Overlay.Render(strings.Join([]string{
		badge,
		"",
		ui.Gold.Render(ui.LevelIcon(l.Icon) + " " + l.Name),
		l.Achievement,
	}, "\n"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height/2, lipgloss.Center, lipgloss.Center, panel)
	}
	return panel
}

func (m boardModel) renderFooter() string {
	status := m.lastLog
	if m.eng.Finished() {
		status = ui.Good.Render(ui.IconTrophy+" All quests complete!") + " " + ui.Muted.Render(m.lastLog)
	}
	return status + "\n" + m.help.View(m.keys)
}
