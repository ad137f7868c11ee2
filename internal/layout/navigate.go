package layout

import (
	"errors"
	"strings"
	"time"

	"github.com/javiermolinar/homedash/internal/dateutil"
)

// ErrUnknownViewMode is returned by ParseViewMode for unsupported names.
var ErrUnknownViewMode = errors.New("view mode must be one of month, week, day, agenda")

// ViewMode selects which calendar view is shown.
type ViewMode string

const (
	ViewMonth  ViewMode = "month"
	ViewWeek   ViewMode = "week"
	ViewDay    ViewMode = "day"
	ViewAgenda ViewMode = "agenda"
)

// ViewModes lists the supported modes in display order.
func ViewModes() []ViewMode {
	return []ViewMode{ViewMonth, ViewWeek, ViewDay, ViewAgenda}
}

// ParseViewMode parses a view mode name, case-insensitively.
func ParseViewMode(s string) (ViewMode, error) {
	mode := ViewMode(strings.ToLower(strings.TrimSpace(s)))
	switch mode {
	case ViewMonth, ViewWeek, ViewDay, ViewAgenda:
		return mode, nil
	default:
		return "", ErrUnknownViewMode
	}
}

// Navigate steps date one unit of mode forward (direction > 0) or backward
// (direction < 0). Month steps clamp the day to the target month's length.
// Day and agenda step by one day, as does any unrecognised mode.
// A zero direction returns date unchanged.
func Navigate(date time.Time, direction int, mode ViewMode) time.Time {
	step := 0
	switch {
	case direction > 0:
		step = 1
	case direction < 0:
		step = -1
	default:
		return date
	}

	switch mode {
	case ViewMonth:
		return dateutil.AddMonths(date, step)
	case ViewWeek:
		return dateutil.AddDays(date, 7*step)
	default:
		return dateutil.AddDays(date, step)
	}
}

// VisibleRange returns the [from, to) window of events a view of ref needs.
// The month range covers the whole grid, including the padding days of the
// neighbouring months. The agenda range runs agendaDays past ref, inclusive.
func VisibleRange(ref time.Time, mode ViewMode, weekStart time.Weekday, agendaDays int) (from, to time.Time) {
	day := dateutil.TruncateToDay(ref)
	switch mode {
	case ViewMonth:
		from = dateutil.StartOfWeek(dateutil.StartOfMonth(day), weekStart)
		to = dateutil.AddDays(dateutil.EndOfWeek(dateutil.EndOfMonth(day), weekStart), 1)
	case ViewWeek:
		from = dateutil.StartOfWeek(day, weekStart)
		to = dateutil.AddDays(from, DaysPerWeek)
	case ViewAgenda:
		from = day
		to = dateutil.AddDays(day, max(agendaDays, 0)+1)
	default:
		from = day
		to = dateutil.AddDays(day, 1)
	}
	return from, to
}

// ViewTitle formats the header for date in mode:
//
//	month   January 2006
//	week    Jan 2 – Jan 8, 2006   (Dec 29, 2024 – Jan 4, 2025 across years)
//	day     Monday, January 2, 2006
//	agenda  Upcoming – January 2006
//
// Unrecognised modes use the day format.
func ViewTitle(date time.Time, mode ViewMode, weekStart time.Weekday) string {
	switch mode {
	case ViewMonth:
		return date.Format("January 2006")
	case ViewWeek:
		start := dateutil.StartOfWeek(date, weekStart)
		end := dateutil.AddDays(start, 6)
		if start.Year() != end.Year() {
			return start.Format("Jan 2, 2006") + " – " + end.Format("Jan 2, 2006")
		}
		return start.Format("Jan 2") + " – " + end.Format("Jan 2, 2006")
	case ViewAgenda:
		return "Upcoming – " + date.Format("January 2006")
	default:
		return date.Format("Monday, January 2, 2006")
	}
}
