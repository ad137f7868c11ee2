// Package event defines the calendar event model shared by every homedash
// component, and the classifier that turns its raw start/end fields into
// local instants.
package event

import (
	"errors"
	"strings"
	"time"

	"github.com/javiermolinar/homedash/internal/dateutil"
)

// Validation errors. The layout core never returns these; they are used by
// importers that want to reject a record before it reaches the cache.
var (
	ErrMissingStart   = errors.New("event has no parsable start")
	ErrMixedTimeForms = errors.New("event start and end must both be dates or both be date-times")
	ErrEndBeforeStart = errors.New("event end is before its start")
)

// Domain errors.
var (
	ErrEventNotFound = errors.New("event not found")
)

// Status represents the confirmation state of an event.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusTentative Status = "tentative"
	StatusCancelled Status = "cancelled"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusTentative, StatusCancelled:
		return true
	default:
		return false
	}
}

// ParseStatus normalizes a status as written by calendar exports
// ("CONFIRMED", " Tentative"). Empty input is confirmed. The second result
// is false for values outside the known set, which also map to confirmed.
func ParseStatus(s string) (Status, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StatusConfirmed, true
	}
	if st := Status(s); st.Valid() {
		return st, true
	}
	return StatusConfirmed, false
}

// EventTime is either a date-time (timed events) or a date (all-day events).
// The field names follow the Google Calendar wire format.
type EventTime struct {
	Date     string `json:"date,omitempty" yaml:"date,omitempty"`         // "2006-01-02"
	DateTime string `json:"dateTime,omitempty" yaml:"dateTime,omitempty"` // RFC 3339
	TimeZone string `json:"timeZone,omitempty" yaml:"timeZone,omitempty"`
}

// IsZero reports whether neither form is set.
func (t EventTime) IsZero() bool {
	return t.Date == "" && t.DateTime == ""
}

// Attendee is passthrough metadata.
type Attendee struct {
	Email          string `json:"email,omitempty" yaml:"email,omitempty"`
	DisplayName    string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	ResponseStatus string `json:"responseStatus,omitempty" yaml:"responseStatus,omitempty"`
	Optional       bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Reminder is a single reminder override.
type Reminder struct {
	Method  string `json:"method" yaml:"method"`
	Minutes int    `json:"minutes" yaml:"minutes"`
}

// Reminders is passthrough metadata.
type Reminders struct {
	UseDefault bool       `json:"useDefault" yaml:"useDefault"`
	Overrides  []Reminder `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// CalendarEvent is a single, already-expanded calendar occurrence.
type CalendarEvent struct {
	ID          string     `json:"id" yaml:"id"`
	Summary     string     `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Location    string     `json:"location,omitempty" yaml:"location,omitempty"`
	Start       EventTime  `json:"start" yaml:"start"`
	End         EventTime  `json:"end" yaml:"end"`
	Status      Status     `json:"status,omitempty" yaml:"status,omitempty"`
	ColorID     string     `json:"colorId,omitempty" yaml:"colorId,omitempty"`
	Attendees   []Attendee `json:"attendees,omitempty" yaml:"attendees,omitempty"`
	Reminders   *Reminders `json:"reminders,omitempty" yaml:"reminders,omitempty"`
	Created     string     `json:"created,omitempty" yaml:"created,omitempty"`
	Updated     string     `json:"updated,omitempty" yaml:"updated,omitempty"`
	HTMLLink    string     `json:"htmlLink,omitempty" yaml:"htmlLink,omitempty"`
}

// NewTimed builds a timed event from two instants.
func NewTimed(id, summary string, start, end time.Time) CalendarEvent {
	return CalendarEvent{
		ID:      id,
		Summary: summary,
		Start:   EventTime{DateTime: start.Format(time.RFC3339)},
		End:     EventTime{DateTime: end.Format(time.RFC3339)},
		Status:  StatusConfirmed,
	}
}

// NewAllDay builds an all-day event. endExclusive is the day after the last
// occupied day; pass the zero time for a single-day event without an end.
func NewAllDay(id, summary string, start, endExclusive time.Time) CalendarEvent {
	e := CalendarEvent{
		ID:      id,
		Summary: summary,
		Start:   EventTime{Date: dateutil.DateKey(start)},
		Status:  StatusConfirmed,
	}
	if !endExclusive.IsZero() {
		e.End = EventTime{Date: dateutil.DateKey(endExclusive)}
	}
	return e
}

// IsCancelled returns true if the event has cancelled status.
func (e CalendarEvent) IsCancelled() bool {
	return e.Status == StatusCancelled
}

// IsTentative returns true if the event has tentative status.
func (e CalendarEvent) IsTentative() bool {
	return e.Status == StatusTentative
}

// Validate checks the start/end shape of an event.
// It is meant for importers; the layout core tolerates invalid events.
func (e CalendarEvent) Validate() error {
	start, ok := e.StartInstant()
	if !ok {
		return ErrMissingStart
	}
	if !e.End.IsZero() && (e.Start.DateTime == "") != (e.End.DateTime == "") {
		return ErrMixedTimeForms
	}
	if end, ok := e.EndInstant(); ok && end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}
