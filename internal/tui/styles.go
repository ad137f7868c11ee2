package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/homedash/internal/event"
	"github.com/javiermolinar/homedash/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Title bar
	TitleStyle     lipgloss.Style
	TabStyle       lipgloss.Style
	TabActiveStyle lipgloss.Style
	HeaderBarStyle lipgloss.Style

	// Calendar body, applied through the renderer
	DayHeaderStyle lipgloss.Style
	TodayStyle     lipgloss.Style
	SelectedStyle  lipgloss.Style
	MutedStyle     lipgloss.Style
	EventStyle     lipgloss.Style
	AllDayStyle    lipgloss.Style
	TentativeStyle lipgloss.Style
	CancelledStyle lipgloss.Style

	// Search bar
	SearchPromptStyle lipgloss.Style
	FilterStyle       lipgloss.Style

	// Footer
	FooterStyle lipgloss.Style
	KeyStyle    lipgloss.Style
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Padding(0, 1)

	s.TabStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Padding(0, 1)

	s.TabActiveStyle = s.TabStyle.
		Bold(true).
		Foreground(p.Accent).
		Underline(true)

	s.HeaderBarStyle = lipgloss.NewStyle().
		Background(p.BgHighlight)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Fg)

	s.TodayStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Today)

	s.SelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Fg).
		Background(p.BgSelection)

	s.MutedStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.EventStyle = lipgloss.NewStyle().
		Foreground(p.TextOnEvent).
		Background(p.EventBg)

	s.AllDayStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnAllDay).
		Background(p.AllDayBg)

	s.TentativeStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(p.Fg).
		Background(p.TentativeBg)

	s.CancelledStyle = lipgloss.NewStyle().
		Strikethrough(true).
		Foreground(p.FgMuted)

	s.SearchPromptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	s.FilterStyle = lipgloss.NewStyle().
		Foreground(p.Tentative)

	s.FooterStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.KeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.TextOnToday).
		Background(p.Today).
		Padding(0, 1)

	s.ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Warning)

	return s
}

// eventStyle picks the block style for an event's kind and status.
func (s *Styles) eventStyle(e event.CalendarEvent) lipgloss.Style {
	switch {
	case e.IsCancelled():
		return s.CancelledStyle
	case e.IsTentative():
		return s.TentativeStyle
	case e.IsAllDay():
		return s.AllDayStyle
	default:
		return s.EventStyle
	}
}

// calendarStyler paints the renderer's output with the theme.
type calendarStyler struct {
	styles *Styles
}

func (c calendarStyler) Event(e event.CalendarEvent, s string) string {
	return c.styles.eventStyle(e).Render(s)
}

func (c calendarStyler) Header(s string) string   { return c.styles.DayHeaderStyle.Render(s) }
func (c calendarStyler) Today(s string) string    { return c.styles.TodayStyle.Render(s) }
func (c calendarStyler) Selected(s string) string { return c.styles.SelectedStyle.Render(s) }
func (c calendarStyler) Muted(s string) string    { return c.styles.MutedStyle.Render(s) }
