// Package dateutil provides calendar-date parsing and arithmetic.
//
// Calendar dates are always handled as local midnight built from a
// year/month/day triplet. A "2024-06-01" all-day date must never go through a
// UTC instant parse, otherwise it shifts a day in zones west of UTC.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date layout used for keys and input.
const DateLayout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
	ErrInvalidWeekday     = errors.New("weekday must be a full English day name")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DateRange represents a validated, inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// ParseDate parses a YYYY-MM-DD string as local midnight.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	return ParseDateIn(s, time.Local)
}

// ParseDateIn parses a YYYY-MM-DD string as midnight in loc.
func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// DateKey formats t as its YYYY-MM-DD calendar date in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays moves t by n calendar days, keeping midnight across DST changes.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfWeek returns the first day of the week containing t,
// where weeks begin on firstDay.
func StartOfWeek(t time.Time, firstDay time.Weekday) time.Time {
	t = TruncateToDay(t)
	offset := (int(t.Weekday()) - int(firstDay) + 7) % 7
	return AddDays(t, -offset)
}

// EndOfWeek returns the last day of the week containing t.
func EndOfWeek(t time.Time, firstDay time.Weekday) time.Time {
	return AddDays(StartOfWeek(t, firstDay), 6)
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return AddDays(StartOfMonth(t).AddDate(0, 1, 0), -1)
}

// AddMonths moves t by n months, clamping the day to the target month's
// length so Jan 31 + 1 month is Feb 28 (or 29), not Mar 3.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, n, 0)
	last := EndOfMonth(target).Day()
	day := min(t.Day(), last)
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// IsWeekend reports whether t is a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ParseWeekday parses a full weekday name, case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	if wd, ok := weekdayMap[strings.ToLower(strings.TrimSpace(s))]; ok {
		return wd, nil
	}
	return time.Sunday, ErrInvalidWeekday
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Keywords: "tomorrow", "yesterday", "next-week", "last-week"
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Prefixed weekdays: "next-monday", "last-friday"
//
// All inputs are case-insensitive. Results are midnight in relativeTo's location.
// Returns ErrInvalidDateFormat for unrecognized input.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return AddDays(today, 1), nil
	case "yesterday":
		return AddDays(today, -1), nil
	case "next-week":
		return AddDays(today, 7), nil
	case "last-week":
		return AddDays(today, -7), nil
	}

	if name, ok := strings.CutPrefix(input, "next-"); ok {
		if target, ok := weekdayMap[name]; ok {
			return nextWeekday(today, target), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if name, ok := strings.CutPrefix(input, "last-"); ok {
		if target, ok := weekdayMap[name]; ok {
			return previousWeekday(today, target), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if target, ok := weekdayMap[input]; ok {
		return nextWeekday(today, target), nil
	}

	return ParseDateIn(input, relativeTo.Location())
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return AddDays(today, daysUntil)
}

// previousWeekday returns the most recent occurrence of the weekday before today.
func previousWeekday(today time.Time, target time.Weekday) time.Time {
	daysSince := int(today.Weekday()) - int(target)
	if daysSince <= 0 {
		daysSince += 7
	}
	return AddDays(today, -daysSince)
}
