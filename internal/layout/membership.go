package layout

import (
	"time"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/event"
)

// EventsOnDay returns the events that occur on day, in input order.
//
// All-day events occupy [start.date, end.date - 1 day]. Timed events are
// members when their [start, end) interval overlaps the local day
// [00:00, next 00:00). Unparsable events are dropped.
func EventsOnDay(day time.Time, events []event.CalendarEvent) []event.CalendarEvent {
	d := localDay(day)
	out := make([]event.CalendarEvent, 0)
	for _, e := range events {
		if OccursOn(d, e) {
			out = append(out, e)
		}
	}
	return out
}

// OccursOn reports whether e is a member of day.
func OccursOn(day time.Time, e event.CalendarEvent) bool {
	d := localDay(day)
	start, end, ok := e.Span()
	if !ok {
		return false
	}
	if e.IsAllDay() {
		// end is exclusive and already at local midnight.
		return !d.Before(start) && d.Before(end)
	}
	return overlaps(start, end, d, dateutil.AddDays(d, 1))
}

// overlaps reports whether the event interval [start, end) intersects
// [from, to). An event that ends at or before its start is treated as the
// single instant start, which belongs to the range containing it.
func overlaps(start, end, from, to time.Time) bool {
	if !end.After(start) {
		return !start.Before(from) && start.Before(to)
	}
	return start.Before(to) && end.After(from)
}
