package source

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/homedash/internal/event"
)

// ProductID identifies homedash in exported calendars.
const ProductID = "-//homedash//calendar export//EN"

// WriteICS serialises events as an iCalendar document. All-day events are
// written with DATE values; timed events in UTC. Events without a parsable
// start are skipped. It returns the number of events written.
func WriteICS(w io.Writer, events []event.CalendarEvent) (int, error) {
	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ical.MethodPublish)

	stamp := time.Now().UTC()
	written := 0
	for _, e := range events {
		start, end, ok := e.Span()
		if !ok {
			continue
		}

		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(stamp)
		if e.IsAllDay() {
			ve.SetAllDayStartAt(start)
			ve.SetAllDayEndAt(end)
		} else {
			ve.SetStartAt(start)
			if end.After(start) {
				ve.SetEndAt(end)
			}
		}

		if e.Summary != "" {
			ve.SetSummary(e.Summary)
		}
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.HTMLLink != "" {
			ve.SetURL(e.HTMLLink)
		}
		switch e.Status {
		case event.StatusTentative:
			ve.SetStatus(ical.ObjectStatusTentative)
		case event.StatusCancelled:
			ve.SetStatus(ical.ObjectStatusCancelled)
		default:
			ve.SetStatus(ical.ObjectStatusConfirmed)
		}
		for _, a := range e.Attendees {
			if a.Email != "" {
				ve.AddAttendee(a.Email)
			}
		}
		written++
	}

	if err := cal.SerializeTo(w); err != nil {
		return 0, fmt.Errorf("writing calendar: %w", err)
	}
	return written, nil
}
