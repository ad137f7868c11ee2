// Package layout turns a flat list of calendar events into the structures a
// calendar view renders: month and week grids, hourly day slots, collision-free
// columns for overlapping timed events, and date-grouped agenda buckets.
//
// Every function in this package is pure. Derived structures are rebuilt on
// each call and never cached or mutated afterwards. Malformed events (no
// parsable start) are skipped rather than reported.
package layout

import (
	"time"

	"github.com/javiermolinar/homedash/internal/event"
)

// DayCell is one cell of the month grid.
type DayCell struct {
	Date           time.Time
	IsCurrentMonth bool
	IsToday        bool
	IsSelected     bool
	IsWeekend      bool
	Events         []event.CalendarEvent
}

// WeekDay is one column of the week grid.
type WeekDay struct {
	Date       time.Time
	DayName    string // "Mon"
	DayNumber  int    // day of month
	IsToday    bool
	IsSelected bool
	Events     []event.CalendarEvent
}

// TimeSlot is one hour row of the day view.
type TimeSlot struct {
	Hour   int
	Label  string // "09:00"
	Events []event.CalendarEvent
}

// EventPosition is the layout of one timed event inside a day column.
// Top and Height are in the caller's vertical unit; Left and Width are
// percentages of the column width.
type EventPosition struct {
	Event        event.CalendarEvent
	Top          float64
	Height       float64
	Left         float64
	Width        float64
	Column       int
	TotalColumns int
}

// GridOptions configures the grid builders.
type GridOptions struct {
	// WeekStart is the first day of the week. The zero value is Sunday.
	WeekStart time.Weekday
	// Selected, if set, marks the matching cell as selected.
	Selected *time.Time
	// Now returns the current time and defines "today". Defaults to time.Now.
	Now func() time.Time
}

func (o GridOptions) today() time.Time {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	return localDay(now())
}

func (o GridOptions) isSelected(day time.Time) bool {
	return o.Selected != nil && sameDate(*o.Selected, day)
}

// PackOptions configures the interval packer's vertical scale.
type PackOptions struct {
	// RowHeight is the height of one hour in the caller's unit
	// (pixels, terminal lines, ...). Values <= 0 default to 60.
	RowHeight float64
	// MinHeight is the smallest height an event may be given.
	MinHeight float64
}

const defaultRowHeight = 60

func (o PackOptions) rowHeight() float64 {
	if o.RowHeight <= 0 {
		return defaultRowHeight
	}
	return o.RowHeight
}

func (o PackOptions) minHeight() float64 {
	return max(o.MinHeight, 0)
}

// localDay returns local midnight of t's calendar date.
func localDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
