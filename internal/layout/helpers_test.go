package layout

import (
	"time"

	"github.com/javiermolinar/homedash/internal/event"
)

// at builds a local wall-clock instant.
func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.Local)
}

// date builds local midnight.
func date(y int, m time.Month, d int) time.Time {
	return at(y, m, d, 0, 0)
}

func timed(id string, start, end time.Time) event.CalendarEvent {
	return event.NewTimed(id, id, start, end)
}

func allDay(id, start, end string) event.CalendarEvent {
	return event.CalendarEvent{
		ID:      id,
		Summary: id,
		Start:   event.EventTime{Date: start},
		End:     event.EventTime{Date: end},
		Status:  event.StatusConfirmed,
	}
}

func ids(events []event.CalendarEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
