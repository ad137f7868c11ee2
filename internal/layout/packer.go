package layout

import (
	"slices"
	"time"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/event"
)

// packItem is an event prepared for column assignment.
type packItem struct {
	ev       event.CalendarEvent
	start    time.Time // real start, used for ordering
	duration time.Duration

	// Visible extent inside the day, in minutes from midnight.
	fromMin float64
	toMin   float64
}

// PackDay lays out the timed events of one day into non-overlapping columns.
//
// Events are sorted by start, longer first on ties, then placed greedily in
// the first column that is free by the time they start; a new column is
// opened when none is. Every event shares the same width, 100/columns.
// The packer is greedy, not optimal: it may use more columns than a
// minimal colouring when overlaps are not transitive.
//
// A column is free when its last event's visible extent ends at or before
// the new event's start, so touching events (10:00-11:00, 11:00-12:00) share
// a column. The visible extent accounts for MinHeight, which keeps short
// events from drawing over the next one in the same column.
//
// events should already be members of day (see EventsOnDay); all-day and
// unparsable events are ignored. Events crossing midnight are clipped to
// the day for vertical placement.
func PackDay(day time.Time, events []event.CalendarEvent, opts PackOptions) []EventPosition {
	dayStart := localDay(day)
	dayEnd := dateutil.AddDays(dayStart, 1)
	dayMinutes := dayEnd.Sub(dayStart).Minutes()

	rowHeight := opts.rowHeight()
	minHeight := opts.minHeight()
	minMinutes := minHeight * 60 / rowHeight

	items := make([]packItem, 0, len(events))
	for _, e := range events {
		if e.IsAllDay() {
			continue
		}
		start, end, ok := e.Span()
		if !ok {
			continue
		}
		from := clamp(start.Sub(dayStart).Minutes(), 0, dayMinutes)
		to := clamp(end.Sub(dayStart).Minutes(), from, dayMinutes)
		items = append(items, packItem{
			ev:       e,
			start:    start,
			duration: end.Sub(start),
			fromMin:  from,
			toMin:    to,
		})
	}
	if len(items) == 0 {
		return []EventPosition{}
	}

	slices.SortStableFunc(items, func(a, b packItem) int {
		if c := a.start.Compare(b.start); c != 0 {
			return c
		}
		// Longer events first so they take the leftmost column.
		switch {
		case a.duration > b.duration:
			return -1
		case a.duration < b.duration:
			return 1
		}
		return 0
	})

	// columnEnds[i] is the visible end (in minutes) of the last event in column i.
	columnEnds := make([]float64, 0, 4)
	assigned := make([]int, len(items))
	for i, it := range items {
		occupiedUntil := max(it.toMin, it.fromMin+minMinutes)
		col := -1
		for c, end := range columnEnds {
			if end <= it.fromMin {
				col = c
				break
			}
		}
		if col == -1 {
			col = len(columnEnds)
			columnEnds = append(columnEnds, occupiedUntil)
		} else {
			columnEnds[col] = occupiedUntil
		}
		assigned[i] = col
	}

	total := len(columnEnds)
	width := 100 / float64(total)
	scale := rowHeight / 60

	positions := make([]EventPosition, len(items))
	for i, it := range items {
		positions[i] = EventPosition{
			Event:        it.ev,
			Top:          it.fromMin * scale,
			Height:       max((it.toMin-it.fromMin)*scale, minHeight),
			Left:         float64(assigned[i]) * width,
			Width:        width,
			Column:       assigned[i],
			TotalColumns: total,
		}
	}
	return positions
}

// PackDayEvents filters events to the members of day and packs them.
func PackDayEvents(day time.Time, events []event.CalendarEvent, opts PackOptions) []EventPosition {
	return PackDay(day, EventsOnDay(day, events), opts)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
