package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Epicquest theme (CLI + board).
// Kept small: reusable styles, level icons and a few emojis.

const (
	IconQuest   = "🗺️"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconLock    = "🔒"
	IconClock   = "⏱"
	IconError   = "🧨"
	IconScroll  = "📜"
	IconTodo    = "○"
	IconRunning = "◐"
	IconChecked = "●"
)

// Level icon names used by catalogs.
var levelIcons = map[string]string{
	"shield": "🛡️",
	"sword":  "⚔️",
	"wand":   "🪄",
	"crown":  "👑",
}

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Done  = lipgloss.NewStyle().Foreground(cMuted).Strikethrough(true)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	ActivePanel = lipgloss.NewStyle().BorderStyle(lipgloss.ThickBorder()).BorderForeground(cGold).Padding(0, 1)
	LockedPanel = Panel.Foreground(cMuted)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Overlay     = lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).BorderForeground(cGold).Padding(1, 4).Bold(true)

	BadgeLevelUp   = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("Level Up!")
	BadgeLevelDown = lipgloss.NewStyle().Bold(true).Foreground(cWarn).Render("Level Down")
)

// GoldColor is the fill used by progress bars.
const GoldColor = "#FFD75F"

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// LevelIcon maps a catalog icon name to its glyph. Unknown names pass through.
func LevelIcon(name string) string {
	if icon, ok := levelIcons[strings.ToLower(strings.TrimSpace(name))]; ok {
		return icon
	}
	if name == "" {
		return IconSparkle
	}
	return name
}

// StatusText renders a quest status word.
func StatusText(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "done":
		return Good.Render("done")
	case "active":
		return Gold.Render("active")
	case "locked":
		return Muted.Render("locked")
	default:
		return Muted.Render(status)
	}
}

// StatusIcon picks the card glyph for a quest status.
func StatusIcon(status string) string {
	switch status {
	case "done":
		return IconDone
	case "locked":
		return IconLock
	default:
		return IconQuest
	}
}
