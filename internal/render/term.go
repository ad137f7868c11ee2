package render

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/homedash/internal/event"
)

// Color definitions shared by every renderer.
var (
	// Confirmed timed events
	colorEvent = color.New(color.FgCyan)

	// All-day events stand out from the time grid
	colorAllDay = color.New(color.FgMagenta, color.Bold)

	// Tentative events are dimmed
	colorTentative = color.New(color.FgYellow, color.Faint)

	// Cancelled events stay visible but struck through
	colorCancelled = color.New(color.FgWhite, color.Faint, color.CrossedOut)

	colorHeader   = color.New(color.Bold)
	colorToday    = color.New(color.FgGreen, color.Bold)
	colorSelected = color.New(color.ReverseVideo)
	colorMuted    = color.New(color.FgWhite, color.Faint)
)

const defaultWidth = 80

// TermWidth returns the terminal width, or a default if detection fails.
func TermWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// Styler colors the pieces of a rendered view. Every method receives text
// already fitted to its cell and must not change its display width.
type Styler interface {
	Event(e event.CalendarEvent, s string) string
	Header(s string) string
	Today(s string) string
	Selected(s string) string
	Muted(s string) string
}

// TermStyler colors output with ANSI escapes, honoring DisableColor.
type TermStyler struct{}

// Event colors s according to the event's kind and status.
func (TermStyler) Event(e event.CalendarEvent, s string) string {
	switch {
	case e.IsCancelled():
		return colorCancelled.Sprint(s)
	case e.IsTentative():
		return colorTentative.Sprint(s)
	case e.IsAllDay():
		return colorAllDay.Sprint(s)
	default:
		return colorEvent.Sprint(s)
	}
}

func (TermStyler) Header(s string) string   { return colorHeader.Sprint(s) }
func (TermStyler) Today(s string) string    { return colorToday.Sprint(s) }
func (TermStyler) Selected(s string) string { return colorSelected.Sprint(s) }
func (TermStyler) Muted(s string) string    { return colorMuted.Sprint(s) }
