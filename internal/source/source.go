// Package source adapts external calendars into homedash events.
//
// Every adapter returns concrete, single-occurrence events. Recurring masters
// (events carrying an RRULE) are skipped rather than expanded.
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/javiermolinar/homedash/internal/event"
)

// Source errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported event file format")
	ErrNoSources         = errors.New("no event sources configured")
)

// Source fetches the events overlapping [from, to).
type Source interface {
	Name() string
	Fetch(ctx context.Context, from, to time.Time) ([]event.CalendarEvent, error)
}

// Open returns the file-backed source for path, picked by extension:
// .ics for ICS, .json, .yaml and .yml for event files.
func Open(path string, opts ...Option) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ics", ".ical", ".ifb":
		return NewICSFile(path, opts...), nil
	case ".json", ".yaml", ".yml":
		return NewEventFile(path, opts...), nil
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// inWindow reports whether e overlaps [from, to). A zero from or to leaves
// that side unbounded. Zero-length events match when their instant is inside.
func inWindow(e event.CalendarEvent, from, to time.Time) bool {
	start, end, ok := e.Span()
	if !ok {
		return false
	}
	if !to.IsZero() && !start.Before(to) {
		return false
	}
	if from.IsZero() {
		return true
	}
	if !end.After(start) {
		return !start.Before(from)
	}
	return end.After(from)
}

func filterWindow(events []event.CalendarEvent, from, to time.Time) []event.CalendarEvent {
	out := make([]event.CalendarEvent, 0, len(events))
	for _, e := range events {
		if inWindow(e, from, to) {
			out = append(out, e)
		}
	}
	return out
}
