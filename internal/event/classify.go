package event

import (
	"time"

	"github.com/javiermolinar/homedash/internal/dateutil"
)

// localDateTimeLayout accepts date-times that arrive without an offset.
const localDateTimeLayout = "2006-01-02T15:04:05"

// IsAllDay returns true if the event is specified by calendar date only.
func (e CalendarEvent) IsAllDay() bool {
	return e.Start.DateTime == "" && e.Start.Date != ""
}

// StartInstant returns the event start as a local instant.
// All-day events start at local midnight of their start date.
// The boolean is false when the start cannot be parsed.
func (e CalendarEvent) StartInstant() (time.Time, bool) {
	if e.IsAllDay() {
		return parseDate(e.Start.Date)
	}
	return parseDateTime(e.Start.DateTime)
}

// EndInstant returns the event end as a local instant.
//
// All-day ends are exclusive: the end date itself is not occupied. A missing,
// unparsable or non-increasing all-day end resolves to the day after the start.
// Timed events report false when the end is missing or unparsable.
func (e CalendarEvent) EndInstant() (time.Time, bool) {
	if e.IsAllDay() {
		start, ok := parseDate(e.Start.Date)
		if !ok {
			return time.Time{}, false
		}
		end, ok := parseDate(e.End.Date)
		if !ok || !end.After(start) {
			return dateutil.AddDays(start, 1), true
		}
		return end, true
	}
	return parseDateTime(e.End.DateTime)
}

// Span returns the [start, end) interval used for layout.
// A timed event with no usable end collapses to its start instant.
func (e CalendarEvent) Span() (start, end time.Time, ok bool) {
	start, ok = e.StartInstant()
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, endOK := e.EndInstant()
	if !endOK {
		end = start
	}
	return start, end, true
}

// DurationMinutes returns end minus start in whole minutes.
// Returns 0 if either instant is missing; negative for inconsistent input.
func (e CalendarEvent) DurationMinutes() int {
	start, ok := e.StartInstant()
	if !ok {
		return 0
	}
	end, ok := e.EndInstant()
	if !ok {
		return 0
	}
	return int(end.Sub(start).Minutes())
}

// LastDate returns the last calendar date an all-day event occupies
// (end date minus one day). For timed events it is the date of the end
// instant, or of the start when the end is missing.
func (e CalendarEvent) LastDate() (time.Time, bool) {
	start, end, ok := e.Span()
	if !ok {
		return time.Time{}, false
	}
	if e.IsAllDay() {
		return dateutil.AddDays(end, -1), true
	}
	if end.After(start) && end.Equal(dateutil.TruncateToDay(end)) {
		// Ending exactly at midnight does not occupy the next day.
		end = end.Add(-time.Nanosecond)
	}
	return dateutil.TruncateToDay(end), true
}

// parseDate parses an all-day date as local midnight.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateutil.ParseDateIn(s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseDateTime parses an RFC 3339 instant and converts it to local time.
// Values without an offset are read as local wall-clock time.
func parseDateTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(time.Local), true
	}
	if t, err := time.ParseInLocation(localDateTimeLayout, s, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}
