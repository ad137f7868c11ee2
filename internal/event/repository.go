package event

import (
	"context"
	"time"
)

// Repository defines the storage interface for cached calendar events.
type Repository interface {
	// UpsertEvents inserts or replaces events by ID.
	UpsertEvents(ctx context.Context, events []CalendarEvent) error

	// GetEvent retrieves an event by ID. Returns ErrEventNotFound if absent.
	GetEvent(ctx context.Context, id string) (*CalendarEvent, error)

	// DeleteEvent removes an event by ID. Returns ErrEventNotFound if absent.
	DeleteEvent(ctx context.Context, id string) error

	// ListEventsInRange returns every event whose [start, end) interval
	// overlaps [from, to), ordered by start.
	ListEventsInRange(ctx context.Context, from, to time.Time) ([]CalendarEvent, error)

	// ListAllEvents returns every cached event ordered by start.
	ListAllEvents(ctx context.Context) ([]CalendarEvent, error)

	// Close releases any resources held by the repository.
	Close() error
}
