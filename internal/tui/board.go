package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"epicquest/internal/engine"
)

type Options struct {
	TickInterval    time.Duration
	OverlayDuration time.Duration
	Logger          *log.Logger
	// Now feeds the decay tick; defaults to time.Now.
	Now func() time.Time
}

func RunBoard(ctx context.Context, eng *engine.Engine, opts Options, out io.Writer) error {
	m := newBoardModel(eng, opts)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
