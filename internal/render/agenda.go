package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/event"
	"github.com/javiermolinar/homedash/internal/layout"
)

const timeColumnWidth = 17 // "09:00-Jan 3 10:00"

// Agenda writes events grouped by date, in ascending date order.
// It returns the number of events written.
func Agenda(w io.Writer, groups map[string][]event.CalendarEvent, opts Options) int {
	keys := layout.SortedDateKeys(groups)
	if len(keys) == 0 {
		fmt.Fprintln(w, "No events found.")
		return 0
	}

	st := opts.style()
	width := opts.width()
	today := opts.now()
	count := 0
	for i, key := range keys {
		day, err := dateutil.ParseDate(key)
		if err != nil {
			continue
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		header := fmt.Sprintf("%s  %s", day.Format("Mon Jan 2, 2006"), RelativeDay(day, today))
		if dateutil.SameDay(day, today) {
			fmt.Fprintf(w, "  %s\n", st.Today(header))
		} else {
			fmt.Fprintf(w, "  %s\n", st.Header(header))
		}

		for _, e := range groups[key] {
			fmt.Fprintln(w, agendaRow(st, e, width))
			count++
		}
	}
	return count
}

// AgendaText renders the agenda without colors, for the clipboard or a pipe.
func AgendaText(groups map[string][]event.CalendarEvent, now time.Time) string {
	var b strings.Builder
	for _, key := range layout.SortedDateKeys(groups) {
		day, err := dateutil.ParseDate(key)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "%s (%s)\n", day.Format("Mon Jan 2, 2006"), RelativeDay(day, now))
		for _, e := range groups[key] {
			fmt.Fprintf(&b, "  %s  %s", TimeRange(e), summaryOf(e))
			if e.Location != "" {
				fmt.Fprintf(&b, " @ %s", e.Location)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func agendaRow(st Styler, e event.CalendarEvent, width int) string {
	var duration string
	if !e.IsAllDay() {
		duration = FormatDuration(e.DurationMinutes())
	}

	// Base: "    ○  <time>  " plus "  <duration>" suffix
	overhead := 4 + 1 + 2 + timeColumnWidth + 2 + 2 + len(duration)
	text := summaryOf(e)
	if e.Location != "" {
		text += " @ " + e.Location
	}
	text = fit(text, max(width-overhead, 10))

	row := fmt.Sprintf("    %s  %s  %s", statusSymbol(e.Status), fit(TimeRange(e), timeColumnWidth), st.Event(e, text))
	if duration != "" {
		row += "  " + st.Muted(duration)
	}
	return strings.TrimRight(row, " ")
}
