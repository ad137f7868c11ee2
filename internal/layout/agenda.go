package layout

import (
	"slices"
	"time"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/event"
)

// GroupByDate buckets events by the local calendar date (YYYY-MM-DD) of
// their start. Within a bucket all-day events come first in their original
// relative order, followed by timed events in ascending start order.
func GroupByDate(events []event.CalendarEvent) map[string][]event.CalendarEvent {
	groups := make(map[string][]event.CalendarEvent)
	for _, e := range events {
		start, ok := e.StartInstant()
		if !ok {
			continue
		}
		key := dateutil.DateKey(start)
		groups[key] = append(groups[key], e)
	}
	for _, bucket := range groups {
		slices.SortStableFunc(bucket, compareAgenda)
	}
	return groups
}

func compareAgenda(a, b event.CalendarEvent) int {
	aAll, bAll := a.IsAllDay(), b.IsAllDay()
	switch {
	case aAll && bAll:
		return 0
	case aAll:
		return -1
	case bAll:
		return 1
	}
	as, _ := a.StartInstant()
	bs, _ := b.StartInstant()
	return as.Compare(bs)
}

// SortedDateKeys returns the keys of groups in ascending date order.
func SortedDateKeys(groups map[string][]event.CalendarEvent) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// WithinWindow reports whether e overlaps the calendar days from reference
// through horizon, both included.
func WithinWindow(e event.CalendarEvent, reference, horizon time.Time) bool {
	start, end, ok := e.Span()
	if !ok {
		return false
	}
	from := localDay(reference)
	to := dateutil.AddDays(localDay(horizon), 1)
	return overlaps(start, end, from, to)
}

// FilterWindow keeps the events inside the [reference, horizon] window.
func FilterWindow(events []event.CalendarEvent, reference, horizon time.Time) []event.CalendarEvent {
	out := make([]event.CalendarEvent, 0, len(events))
	for _, e := range events {
		if WithinWindow(e, reference, horizon) {
			out = append(out, e)
		}
	}
	return out
}

// Agenda filters events to the window and groups them by date.
func Agenda(events []event.CalendarEvent, reference, horizon time.Time) map[string][]event.CalendarEvent {
	return GroupByDate(FilterWindow(events, reference, horizon))
}
