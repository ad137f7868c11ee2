package dateutil

import (
	"errors"
	"testing"
	"time"
)

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParseDate(t *testing.T) {
	t.Run("valid date is local midnight", func(t *testing.T) {
		got, err := ParseDate("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := localDate(2025, 1, 15)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
		if got.Location() != time.Local {
			t.Errorf("got location %v, want Local", got.Location())
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		today := TruncateToDay(time.Now())
		if !got.Equal(today) {
			t.Errorf("got %v, want %v", got, today)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestParseDateIn_NoDayShift(t *testing.T) {
	zones := []string{"America/Los_Angeles", "Pacific/Kiritimati", "UTC"}
	for _, name := range zones {
		t.Run(name, func(t *testing.T) {
			loc, err := time.LoadLocation(name)
			if err != nil {
				t.Skipf("zone %s unavailable: %v", name, err)
			}
			got, err := ParseDateIn("2024-06-01", loc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if y, m, d := got.Date(); y != 2024 || m != time.June || d != 1 {
				t.Errorf("got %04d-%02d-%02d, want 2024-06-01", y, m, d)
			}
		})
	}
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid date range", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "2025-01-20")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.Start.Equal(localDate(2025, 1, 15)) {
			t.Errorf("got start %v", dr.Start)
		}
		if !dr.End.Equal(localDate(2025, 1, 20)) {
			t.Errorf("got end %v", dr.End)
		}
	})

	t.Run("empty end defaults to start", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.Start.Equal(dr.End) {
			t.Errorf("expected start and end to be equal, got %v and %v", dr.Start, dr.End)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewDateRange("2025-01-20", "2025-01-15")
		if !errors.Is(err, ErrEndDateBeforeStart) {
			t.Errorf("got error %v, want %v", err, ErrEndDateBeforeStart)
		}
	})

	t.Run("invalid end", func(t *testing.T) {
		_, err := NewDateRange("2025-01-15", "01-20-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		firstDay time.Weekday
		want     time.Time
	}{
		{
			name:     "sunday start from wednesday",
			input:    time.Date(2025, 1, 8, 14, 0, 0, 0, time.Local),
			firstDay: time.Sunday,
			want:     localDate(2025, 1, 5),
		},
		{
			name:     "sunday start from sunday",
			input:    time.Date(2025, 1, 5, 9, 0, 0, 0, time.Local),
			firstDay: time.Sunday,
			want:     localDate(2025, 1, 5),
		},
		{
			name:     "monday start from sunday",
			input:    time.Date(2025, 1, 12, 23, 59, 0, 0, time.Local),
			firstDay: time.Monday,
			want:     localDate(2025, 1, 6),
		},
		{
			name:     "saturday start from friday",
			input:    time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local),
			firstDay: time.Saturday,
			want:     localDate(2025, 1, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.input, tt.firstDay)
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			end := EndOfWeek(tt.input, tt.firstDay)
			if !end.Equal(AddDays(tt.want, 6)) {
				t.Errorf("end: got %v, want %v", end, AddDays(tt.want, 6))
			}
		})
	}
}

func TestMonthBounds(t *testing.T) {
	ref := time.Date(2024, 2, 17, 13, 0, 0, 0, time.Local)
	if got := StartOfMonth(ref); !got.Equal(localDate(2024, 2, 1)) {
		t.Errorf("start: got %v", got)
	}
	if got := EndOfMonth(ref); !got.Equal(localDate(2024, 2, 29)) {
		t.Errorf("end: got %v (leap year)", got)
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"clamps to february", localDate(2025, 1, 31), 1, localDate(2025, 2, 28)},
		{"clamps to leap february", localDate(2024, 1, 31), 1, localDate(2024, 2, 29)},
		{"backwards across year", localDate(2025, 1, 15), -1, localDate(2024, 12, 15)},
		{"march 31 back to february", localDate(2025, 3, 31), -1, localDate(2025, 2, 28)},
		{"twelve months", localDate(2025, 6, 30), 12, localDate(2026, 6, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMonths(tt.in, tt.n); !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	b := time.Date(2025, 3, 1, 23, 59, 0, 0, time.Local)
	c := time.Date(2025, 3, 2, 0, 0, 0, 0, time.Local)
	if !SameDay(a, b) {
		t.Error("expected same day")
	}
	if SameDay(b, c) {
		t.Error("expected different days")
	}
}

func TestTruncateToDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	got := TruncateToDay(input)
	want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseWeekday(t *testing.T) {
	got, err := ParseWeekday(" Monday ")
	if err != nil || got != time.Monday {
		t.Errorf("got %v, %v; want Monday", got, err)
	}
	if _, err := ParseWeekday("mon"); !errors.Is(err, ErrInvalidWeekday) {
		t.Errorf("got error %v, want %v", err, ErrInvalidWeekday)
	}
}

func TestParseRelativeDate(t *testing.T) {
	// Reference date: Friday, January 10, 2025
	friday := time.Date(2025, 1, 10, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"empty returns today", "", localDate(2025, 1, 10)},
		{"TODAY uppercase", "TODAY", localDate(2025, 1, 10)},
		{"tomorrow", "tomorrow", localDate(2025, 1, 11)},
		{"yesterday", "yesterday", localDate(2025, 1, 9)},
		{"next-week", "next-week", localDate(2025, 1, 17)},
		{"last-week", "last-week", localDate(2025, 1, 3)},
		{"monday from friday", "monday", localDate(2025, 1, 13)},
		{"friday from friday returns next friday", "friday", localDate(2025, 1, 17)},
		{"next-saturday", "next-saturday", localDate(2025, 1, 11)},
		{"last-friday returns previous week", "last-friday", localDate(2025, 1, 3)},
		{"last-monday", "last-monday", localDate(2025, 1, 6)},
		{"absolute past date allowed", "2024-12-24", localDate(2024, 12, 24)},
		{"input with whitespace", "  monday  ", localDate(2025, 1, 13)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, friday)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRelativeDate_Errors(t *testing.T) {
	friday := time.Date(2025, 1, 10, 14, 30, 0, 0, time.Local)

	inputs := []string{"01-10-2025", "10/01/2025", "mondya", "next-mondya", "last-", "foo"}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRelativeDate(input, friday)
			if !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
			}
		})
	}
}
