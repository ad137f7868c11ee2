package event

import (
	"errors"
	"testing"
	"time"
)

func TestIsAllDay(t *testing.T) {
	tests := []struct {
		name string
		ev   CalendarEvent
		want bool
	}{
		{"date only", CalendarEvent{Start: EventTime{Date: "2024-06-01"}}, true},
		{"date-time", CalendarEvent{Start: EventTime{DateTime: "2024-06-01T10:00:00Z"}}, false},
		{"both present prefers timed", CalendarEvent{Start: EventTime{Date: "2024-06-01", DateTime: "2024-06-01T10:00:00Z"}}, false},
		{"neither", CalendarEvent{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.IsAllDay(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartInstant_AllDayIsLocalMidnight(t *testing.T) {
	ev := CalendarEvent{Start: EventTime{Date: "2024-06-01"}}
	got, ok := ev.StartInstant()
	if !ok {
		t.Fatal("expected start to parse")
	}
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if y, m, d := got.Date(); y != 2024 || m != time.June || d != 1 {
		t.Errorf("date shifted to %04d-%02d-%02d", y, m, d)
	}
}

func TestStartInstant_Timed(t *testing.T) {
	ev := CalendarEvent{Start: EventTime{DateTime: "2024-06-01T10:00:00+02:00"}}
	got, ok := ev.StartInstant()
	if !ok {
		t.Fatal("expected start to parse")
	}
	want := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got.Location() != time.Local {
		t.Errorf("expected local location, got %v", got.Location())
	}
}

func TestStartInstant_Malformed(t *testing.T) {
	for _, ev := range []CalendarEvent{
		{},
		{Start: EventTime{DateTime: "not a time"}},
		{Start: EventTime{Date: "2024-13-45"}},
	} {
		if _, ok := ev.StartInstant(); ok {
			t.Errorf("expected %+v to be unparsable", ev.Start)
		}
	}
}

func TestEndInstant_AllDay(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.Local) }

	tests := []struct {
		name string
		ev   CalendarEvent
		want time.Time
	}{
		{"exclusive end kept", NewAllDay("a", "Trip", day(1), day(3)), day(3)},
		{"missing end is one day", NewAllDay("b", "Holiday", day(1), time.Time{}), day(2)},
		{"end equal to start is one day", CalendarEvent{Start: EventTime{Date: "2024-06-01"}, End: EventTime{Date: "2024-06-01"}}, day(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ev.EndInstant()
			if !ok {
				t.Fatal("expected end")
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		ev   CalendarEvent
		want int
	}{
		{"ninety minutes", NewTimed("a", "A", base, base.Add(90*time.Minute)), 90},
		{"zero duration", NewTimed("b", "B", base, base), 0},
		{"negative duration kept", NewTimed("c", "C", base, base.Add(-30*time.Minute)), -30},
		{"missing end", CalendarEvent{Start: EventTime{DateTime: base.Format(time.RFC3339)}}, 0},
		{"missing start", CalendarEvent{End: EventTime{DateTime: base.Format(time.RFC3339)}}, 0},
		{"all-day two days", NewAllDay("d", "D", base, base.AddDate(0, 0, 2)), 2 * 24 * 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.DurationMinutes(); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSpan_MissingEndCollapses(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)
	ev := CalendarEvent{Start: EventTime{DateTime: start.Format(time.RFC3339)}}
	s, e, ok := ev.Span()
	if !ok {
		t.Fatal("expected span")
	}
	if !s.Equal(start) || !e.Equal(start) {
		t.Errorf("got [%v, %v), want collapsed at %v", s, e, start)
	}
}

func TestLastDate(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2024, 6, d, h, 0, 0, 0, time.Local) }

	tests := []struct {
		name string
		ev   CalendarEvent
		want time.Time
	}{
		{"all-day exclusive end", NewAllDay("a", "A", day(1, 0), day(3, 0)), day(2, 0)},
		{"timed same day", NewTimed("b", "B", day(1, 9), day(1, 10)), day(1, 0)},
		{"timed ending at midnight", NewTimed("c", "C", day(1, 22), day(2, 0)), day(1, 0)},
		{"timed overnight", NewTimed("d", "D", day(1, 22), day(2, 2)), day(2, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ev.LastDate()
			if !ok {
				t.Fatal("expected last date")
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		ev      CalendarEvent
		wantErr error
	}{
		{"valid timed", NewTimed("a", "A", base, base.Add(time.Hour)), nil},
		{"valid all-day", NewAllDay("b", "B", base, time.Time{}), nil},
		{"missing start", CalendarEvent{}, ErrMissingStart},
		{"mixed forms", CalendarEvent{Start: EventTime{Date: "2024-06-01"}, End: EventTime{DateTime: "2024-06-01T10:00:00Z"}}, ErrMixedTimeForms},
		{"end before start", NewTimed("c", "C", base, base.Add(-time.Hour)), ErrEndBeforeStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ev.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusTentative.Valid() {
		t.Error("tentative should be valid")
	}
	if Status("maybe").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   Status
		wantOK bool
	}{
		{"", StatusConfirmed, true},
		{"confirmed", StatusConfirmed, true},
		{"CONFIRMED", StatusConfirmed, true},
		{" Tentative ", StatusTentative, true},
		{"Cancelled", StatusCancelled, true},
		{"maybe", StatusConfirmed, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStatus(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseStatus(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
