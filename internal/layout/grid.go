package layout

import (
	"fmt"
	"time"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/event"
)

// DaysPerWeek is the number of columns in the month and week grids.
const DaysPerWeek = 7

// HoursPerDay is the number of rows in the day view.
const HoursPerDay = 24

// MonthGrid builds the month view containing ref. The grid starts on the
// first day of the week holding the 1st and ends on the last day of the
// week holding the month's last day, so its length is a multiple of 7.
func MonthGrid(ref time.Time, events []event.CalendarEvent, opts GridOptions) []DayCell {
	ref = localDay(ref)
	today := opts.today()

	first := dateutil.StartOfWeek(dateutil.StartOfMonth(ref), opts.WeekStart)
	last := dateutil.EndOfWeek(dateutil.EndOfMonth(ref), opts.WeekStart)

	cells := make([]DayCell, 0, 6*DaysPerWeek)
	for d := first; !d.After(last); d = dateutil.AddDays(d, 1) {
		cells = append(cells, DayCell{
			Date:           d,
			IsCurrentMonth: d.Month() == ref.Month() && d.Year() == ref.Year(),
			IsToday:        sameDate(d, today),
			IsSelected:     opts.isSelected(d),
			IsWeekend:      dateutil.IsWeekend(d),
			Events:         EventsOnDay(d, events),
		})
	}
	return cells
}

// WeekGrid builds the seven days of the week containing ref.
func WeekGrid(ref time.Time, events []event.CalendarEvent, opts GridOptions) []WeekDay {
	start := dateutil.StartOfWeek(localDay(ref), opts.WeekStart)
	today := opts.today()

	days := make([]WeekDay, 0, DaysPerWeek)
	for i := range DaysPerWeek {
		d := dateutil.AddDays(start, i)
		days = append(days, WeekDay{
			Date:       d,
			DayName:    d.Format("Mon"),
			DayNumber:  d.Day(),
			IsToday:    sameDate(d, today),
			IsSelected: opts.isSelected(d),
			Events:     EventsOnDay(d, events),
		})
	}
	return days
}

// DayTimeSlots builds 24 hourly slots for day. Each timed member event is
// placed in the slot of its start hour; events that began on an earlier
// day land in hour 0. All-day events are not slotted.
func DayTimeSlots(day time.Time, events []event.CalendarEvent) []TimeSlot {
	d := localDay(day)

	slots := make([]TimeSlot, HoursPerDay)
	for h := range slots {
		slots[h] = TimeSlot{
			Hour:   h,
			Label:  fmt.Sprintf("%02d:00", h),
			Events: make([]event.CalendarEvent, 0),
		}
	}

	for _, e := range EventsOnDay(d, events) {
		if e.IsAllDay() {
			continue
		}
		start, _ := e.StartInstant()
		hour := 0
		if sameDate(start, d) {
			hour = start.Hour()
		}
		slots[hour].Events = append(slots[hour].Events, e)
	}
	return slots
}

// AllDayEvents returns the all-day members of day, in input order.
func AllDayEvents(day time.Time, events []event.CalendarEvent) []event.CalendarEvent {
	out := make([]event.CalendarEvent, 0)
	for _, e := range EventsOnDay(day, events) {
		if e.IsAllDay() {
			out = append(out, e)
		}
	}
	return out
}
