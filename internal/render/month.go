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

const minCellWidth = 6

// Month writes the month grid containing ref.
func Month(w io.Writer, ref time.Time, events []event.CalendarEvent, selected *time.Time, opts Options) {
	cells := layout.MonthGrid(ref, events, opts.gridOptions(selected))
	cellW := max((opts.width()-layout.DaysPerWeek-1)/layout.DaysPerWeek, minCellWidth)
	rule := strings.Repeat("─", cellW*layout.DaysPerWeek+layout.DaysPerWeek+1)

	st := opts.style()
	fmt.Fprintf(w, "\n  %s\n", st.Header(layout.ViewTitle(ref, layout.ViewMonth, opts.WeekStart)))
	fmt.Fprintln(w, rule)

	names := make([]string, 0, layout.DaysPerWeek)
	for _, c := range cells[:layout.DaysPerWeek] {
		names = append(names, st.Header(fit(c.Date.Format("Mon"), cellW)))
	}
	fmt.Fprintf(w, "│%s│\n", strings.Join(names, "│"))
	fmt.Fprintln(w, rule)

	for i := 0; i < len(cells); i += layout.DaysPerWeek {
		writeMonthWeek(w, st, cells[i:i+layout.DaysPerWeek], cellW, opts.maxEvents())
		fmt.Fprintln(w, rule)
	}
}

func writeMonthWeek(w io.Writer, st Styler, week []layout.DayCell, cellW, maxEvents int) {
	rows := 0
	for _, c := range week {
		rows = max(rows, min(len(c.Events), maxEvents+1))
	}

	line := make([]string, len(week))
	for i, c := range week {
		line[i] = dayNumber(st, c, cellW)
	}
	fmt.Fprintf(w, "│%s│\n", strings.Join(line, "│"))

	for r := range rows {
		for i, c := range week {
			line[i] = monthCellLine(st, c, r, cellW, maxEvents)
		}
		fmt.Fprintf(w, "│%s│\n", strings.Join(line, "│"))
	}
}

func dayNumber(st Styler, c layout.DayCell, cellW int) string {
	s := fit(fmt.Sprintf("%2d", c.Date.Day()), cellW)
	switch {
	case c.IsSelected:
		return st.Selected(s)
	case c.IsToday:
		return st.Today(s)
	case !c.IsCurrentMonth:
		return st.Muted(s)
	case c.IsWeekend:
		return st.Header(s)
	}
	return s
}

// monthCellLine returns row r of a cell's event list. The last row becomes
// "+N more" when the cell overflows.
func monthCellLine(st Styler, c layout.DayCell, r, cellW, maxEvents int) string {
	n := len(c.Events)
	switch {
	case r >= n:
		return fit("", cellW)
	case r == maxEvents:
		return st.Muted(fit(fmt.Sprintf("+%d more", n-maxEvents), cellW))
	}
	e := c.Events[r]
	text := summaryOf(e)
	if !e.IsAllDay() {
		if start, ok := e.StartInstant(); ok && dateutil.SameDay(start, c.Date) {
			text = start.Format("15:04") + " " + text
		}
	}
	return st.Event(e, fit(text, cellW))
}
