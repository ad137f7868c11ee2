package render

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/event"
	"github.com/javiermolinar/homedash/internal/layout"
)

const (
	hourLabelWidth = 6 // "09:00 "
	workdayStart   = 8
	workdayEnd     = 18
	eventMarker    = "▌"
)

// gridColumn is one day of a time grid.
type gridColumn struct {
	header    string
	today     bool
	selected  bool
	allDay    []event.CalendarEvent
	positions []layout.EventPosition
}

// Week writes the week containing ref as a time grid, one column per day.
func Week(w io.Writer, ref time.Time, events []event.CalendarEvent, selected *time.Time, opts Options) {
	pack := opts.pack()
	days := layout.WeekGrid(ref, events, opts.gridOptions(selected))

	cols := make([]gridColumn, 0, len(days))
	for _, d := range days {
		cols = append(cols, gridColumn{
			header:    fmt.Sprintf("%s %d", d.DayName, d.DayNumber),
			today:     d.IsToday,
			selected:  d.IsSelected,
			allDay:    layout.AllDayEvents(d.Date, d.Events),
			positions: layout.PackDay(d.Date, d.Events, pack),
		})
	}

	fmt.Fprintf(w, "\n  %s\n", opts.style().Header(layout.ViewTitle(ref, layout.ViewWeek, opts.WeekStart)))
	writeTimeGrid(w, cols, pack, opts)
}

// Day writes a single day as a time grid. Overlapping events are drawn side
// by side in the columns assigned by the packer.
func Day(w io.Writer, day time.Time, events []event.CalendarEvent, opts Options) {
	pack := opts.pack()
	members := layout.EventsOnDay(day, events)
	col := gridColumn{
		header:    day.Format("Mon 2"),
		today:     dateutil.SameDay(day, opts.now()),
		allDay:    layout.AllDayEvents(day, members),
		positions: layout.PackDay(day, members, pack),
	}

	fmt.Fprintf(w, "\n  %s\n", opts.style().Header(layout.ViewTitle(day, layout.ViewDay, opts.WeekStart)))
	writeTimeGrid(w, []gridColumn{col}, pack, opts)
}

// pack returns the packer scale in terminal lines per hour.
func (o Options) pack() layout.PackOptions {
	p := o.Pack
	if p.RowHeight <= 0 {
		p.RowHeight = 1
	}
	return p
}

func writeTimeGrid(w io.Writer, cols []gridColumn, pack layout.PackOptions, opts Options) {
	st := opts.style()
	colW := max((opts.width()-hourLabelWidth-len(cols)-1)/len(cols), minCellWidth)
	rule := strings.Repeat("─", hourLabelWidth+(colW+1)*len(cols)+1)
	blank := strings.Repeat(" ", hourLabelWidth)

	fmt.Fprintln(w, rule)
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = columnHeader(st, c, colW)
	}
	writeGridLine(w, blank, cells)

	allDayRows := 0
	for _, c := range cols {
		allDayRows = max(allDayRows, len(c.allDay))
	}
	for r := range allDayRows {
		for i, c := range cols {
			cells[i] = fit("", colW)
			if r < len(c.allDay) {
				cells[i] = st.Event(c.allDay[r], fit(summaryOf(c.allDay[r]), colW))
			}
		}
		writeGridLine(w, blank, cells)
	}
	fmt.Fprintln(w, rule)

	fromHour, toHour := hourRange(cols, pack, opts)
	rh := pack.RowHeight
	first := int(math.Floor(float64(fromHour) * rh))
	last := int(math.Ceil(float64(toHour) * rh))
	for line := first; line < last; line++ {
		label := blank
		hour := int(float64(line) / rh)
		if line == first || int(float64(line-1)/rh) != hour {
			label = st.Muted(fmt.Sprintf("%02d:00 ", hour))
		}
		for i, c := range cols {
			cells[i] = gridCell(st, c.positions, line, colW)
		}
		writeGridLine(w, label, cells)
	}
	fmt.Fprintln(w, rule)
}

func writeGridLine(w io.Writer, label string, cells []string) {
	fmt.Fprintf(w, "%s│%s│\n", label, strings.Join(cells, "│"))
}

func columnHeader(st Styler, c gridColumn, width int) string {
	s := fit(c.header, width)
	switch {
	case c.selected:
		return st.Selected(s)
	case c.today:
		return st.Today(s)
	}
	return st.Header(s)
}

// hourRange returns the hours shown by the grid: the configured range, or
// the working day widened to fit every positioned event.
func hourRange(cols []gridColumn, pack layout.PackOptions, opts Options) (from, to int) {
	if opts.FromHour != 0 || opts.ToHour != 0 {
		from = min(max(opts.FromHour, 0), layout.HoursPerDay-1)
		to = min(max(opts.ToHour, from+1), layout.HoursPerDay)
		return from, to
	}

	from, to = workdayStart, workdayEnd
	for _, c := range cols {
		for _, p := range c.positions {
			from = min(from, int(p.Top/pack.RowHeight))
			to = max(to, int(math.Ceil((p.Top+p.Height)/pack.RowHeight)))
		}
	}
	return max(from, 0), min(to, layout.HoursPerDay)
}

// lineSpan returns the first and last grid line covered by p.
func lineSpan(p layout.EventPosition) (first, last int) {
	first = int(math.Floor(p.Top))
	last = max(int(math.Ceil(p.Top+p.Height))-1, first)
	return first, last
}

// gridCell renders one line of a day column. Each packed column gets an
// equal share of the width; the last one absorbs the remainder.
func gridCell(st Styler, positions []layout.EventPosition, line, width int) string {
	if len(positions) == 0 {
		return fit("", width)
	}
	total := max(positions[0].TotalColumns, 1)
	sub := width / total

	parts := make([]string, total)
	starts := make([]bool, total)
	for _, p := range positions {
		first, last := lineSpan(p)
		if line < first || line > last || p.Column >= total {
			continue
		}
		// A block that starts on this line wins over the tail of the previous one.
		if parts[p.Column] != "" && (starts[p.Column] || line != first) {
			continue
		}
		cw := sub
		if p.Column == total-1 {
			cw = width - sub*(total-1)
		}
		text := eventMarker
		if line == first {
			text += summaryOf(p.Event)
		}
		parts[p.Column] = st.Event(p.Event, fit(text, cw))
		starts[p.Column] = line == first
	}

	for i := range parts {
		if parts[i] != "" {
			continue
		}
		cw := sub
		if i == total-1 {
			cw = width - sub*(total-1)
		}
		parts[i] = fit("", cw)
	}
	return strings.Join(parts, "")
}
