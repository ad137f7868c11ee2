// Package db provides the SQLite event cache.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/homedash/internal/event"
)

// SQLite implements event.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ event.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

const eventColumns = `
	id, summary, description, location,
	start_date, start_datetime, start_tz,
	end_date, end_datetime, end_tz,
	status, color_id, attendees, reminders,
	created, updated, html_link`

// UpsertEvents inserts or replaces events by ID in a single transaction.
// An event without a parsable start aborts the batch with event.ErrMissingStart.
func (s *SQLite) UpsertEvents(ctx context.Context, events []event.CalendarEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := upsertTx(ctx, tx, "", events); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ReplaceEvents makes events the complete set of rows owned by source inside
// [from, to). Rows of that source overlapping the window are deleted, then
// events are upserted, atomically. Rows written by other sources or by
// UpsertEvents are left alone. It returns the number of rows deleted.
func (s *SQLite) ReplaceEvents(ctx context.Context, source string, from, to time.Time, events []event.CalendarEvent) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		DELETE FROM events
		WHERE source = ?
		  AND range_start < ?
		  AND (range_end > ? OR (range_end = range_start AND range_start >= ?))
	`
	result, err := tx.ExecContext(ctx, query, source, to.Unix(), from.Unix(), from.Unix())
	if err != nil {
		return 0, fmt.Errorf("deleting stale events: %w", err)
	}
	deleted, _ := result.RowsAffected()

	if err := upsertTx(ctx, tx, source, events); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return deleted, nil
}

func upsertTx(ctx context.Context, tx *sql.Tx, source string, events []event.CalendarEvent) error {
	if len(events) == 0 {
		return nil
	}

	query := `
		INSERT INTO events (` + eventColumns + `, source, range_start, range_end, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			summary = excluded.summary,
			description = excluded.description,
			location = excluded.location,
			start_date = excluded.start_date,
			start_datetime = excluded.start_datetime,
			start_tz = excluded.start_tz,
			end_date = excluded.end_date,
			end_datetime = excluded.end_datetime,
			end_tz = excluded.end_tz,
			status = excluded.status,
			color_id = excluded.color_id,
			attendees = excluded.attendees,
			reminders = excluded.reminders,
			created = excluded.created,
			updated = excluded.updated,
			html_link = excluded.html_link,
			source = excluded.source,
			range_start = excluded.range_start,
			range_end = excluded.range_end,
			synced_at = excluded.synced_at
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range events {
		start, end, ok := e.Span()
		if !ok {
			return fmt.Errorf("event %q: %w", e.ID, event.ErrMissingStart)
		}
		if end.Before(start) {
			end = start
		}

		attendees, err := encodeJSON(e.Attendees, len(e.Attendees) == 0)
		if err != nil {
			return fmt.Errorf("encoding attendees of %q: %w", e.ID, err)
		}
		reminders, err := encodeJSON(e.Reminders, e.Reminders == nil)
		if err != nil {
			return fmt.Errorf("encoding reminders of %q: %w", e.ID, err)
		}

		_, err = stmt.ExecContext(ctx,
			e.ID, e.Summary, e.Description, e.Location,
			e.Start.Date, e.Start.DateTime, e.Start.TimeZone,
			e.End.Date, e.End.DateTime, e.End.TimeZone,
			string(e.Status), e.ColorID, attendees, reminders,
			e.Created, e.Updated, e.HTMLLink,
			source, start.Unix(), end.Unix(), now,
		)
		if err != nil {
			return fmt.Errorf("upserting event %q: %w", e.ID, err)
		}
	}
	return nil
}

// GetEvent retrieves an event by ID.
func (s *SQLite) GetEvent(ctx context.Context, id string) (*event.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

	e, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, event.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return &e, nil
}

// DeleteEvent removes an event by ID.
func (s *SQLite) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("event %q: %w", id, event.ErrEventNotFound)
	}

	return nil
}

// ListEventsInRange returns events whose span overlaps [from, to), ordered by start.
// Zero-length events match when their instant falls inside the range.
func (s *SQLite) ListEventsInRange(ctx context.Context, from, to time.Time) ([]event.CalendarEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE range_start < ?
		  AND (range_end > ? OR (range_end = range_start AND range_start >= ?))
		ORDER BY range_start, id
	`

	return s.queryEvents(ctx, query, to.Unix(), from.Unix(), from.Unix())
}

// ListAllEvents returns every cached event ordered by start.
func (s *SQLite) ListAllEvents(ctx context.Context) ([]event.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY range_start, id`
	return s.queryEvents(ctx, query)
}

// CountEvents returns the number of cached events.
func (s *SQLite) CountEvents(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return n, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) queryEvents(ctx context.Context, query string, args ...any) ([]event.CalendarEvent, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := make([]event.CalendarEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return events, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (event.CalendarEvent, error) {
	var (
		e         event.CalendarEvent
		status    string
		attendees sql.NullString
		reminders sql.NullString
	)

	err := row.Scan(
		&e.ID, &e.Summary, &e.Description, &e.Location,
		&e.Start.Date, &e.Start.DateTime, &e.Start.TimeZone,
		&e.End.Date, &e.End.DateTime, &e.End.TimeZone,
		&status, &e.ColorID, &attendees, &reminders,
		&e.Created, &e.Updated, &e.HTMLLink,
	)
	if err != nil {
		return event.CalendarEvent{}, err
	}
	e.Status = event.Status(status)

	if attendees.Valid && attendees.String != "" {
		if err := json.Unmarshal([]byte(attendees.String), &e.Attendees); err != nil {
			return event.CalendarEvent{}, fmt.Errorf("decoding attendees: %w", err)
		}
	}
	if reminders.Valid && reminders.String != "" {
		var r event.Reminders
		if err := json.Unmarshal([]byte(reminders.String), &r); err != nil {
			return event.CalendarEvent{}, fmt.Errorf("decoding reminders: %w", err)
		}
		e.Reminders = &r
	}

	return e, nil
}

// encodeJSON stores v as JSON text, or NULL when empty is set so that nil
// slices and pointers come back nil.
func encodeJSON(v any, empty bool) (sql.NullString, error) {
	if empty {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
