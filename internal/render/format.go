// Package render draws the layout structures as plain terminal text for the
// CLI: a month grid, week and day time grids with packed event columns, and a
// grouped agenda list.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/event"
	"github.com/javiermolinar/homedash/internal/layout"
)

// Options configures the renderers.
type Options struct {
	// Width is the output width in columns. Zero means the terminal width.
	Width int
	// WeekStart is the first day of the week.
	WeekStart time.Weekday
	// Now defines "today". Defaults to time.Now.
	Now func() time.Time
	// MaxEventsPerCell caps the events listed in a month cell. Defaults to 3.
	MaxEventsPerCell int
	// Pack is the vertical scale of the week and day time grids, in lines per hour.
	Pack layout.PackOptions
	// FromHour and ToHour bound the time grid. Both zero means the working
	// day widened to fit every event.
	FromHour, ToHour int
	// Style colors the output. Defaults to TermStyler.
	Style Styler
}

func (o Options) style() Styler {
	if o.Style != nil {
		return o.Style
	}
	return TermStyler{}
}

func (o Options) width() int {
	if o.Width > 0 {
		return o.Width
	}
	return TermWidth()
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) maxEvents() int {
	if o.MaxEventsPerCell > 0 {
		return o.MaxEventsPerCell
	}
	return 3
}

func (o Options) gridOptions(selected *time.Time) layout.GridOptions {
	return layout.GridOptions{WeekStart: o.WeekStart, Selected: selected, Now: o.now}
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// TimeRange returns "09:00-10:30" for timed events and "all day" otherwise.
// Events ending on a later date show the end date too.
func TimeRange(e event.CalendarEvent) string {
	if e.IsAllDay() {
		return "all day"
	}
	start, end, ok := e.Span()
	if !ok {
		return ""
	}
	if end.Equal(start) {
		return start.Format("15:04")
	}
	if dateutil.SameDay(start, end) {
		return start.Format("15:04") + "-" + end.Format("15:04")
	}
	return start.Format("15:04") + "-" + end.Format("Jan 2 15:04")
}

// RelativeDay labels a date relative to today: "Today", "Tomorrow",
// "Yesterday", or "3 days from now".
func RelativeDay(day, today time.Time) string {
	d := dateutil.TruncateToDay(day)
	t := dateutil.TruncateToDay(today)
	days := calendarDaysBetween(t, d)
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	case -1:
		return "Yesterday"
	}
	// Whole days avoid DST hours leaking into the label.
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return humanize.RelTime(base.AddDate(0, 0, days), base, "ago", "from now")
}

func calendarDaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

func statusSymbol(s event.Status) string {
	switch s {
	case event.StatusTentative:
		return "?"
	case event.StatusCancelled:
		return "✗"
	default:
		return "○"
	}
}

func summaryOf(e event.CalendarEvent) string {
	if s := strings.TrimSpace(e.Summary); s != "" {
		return s
	}
	return "(no title)"
}

// fit truncates s to width display columns and pads it with spaces.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
