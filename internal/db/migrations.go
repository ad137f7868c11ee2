package db

import "fmt"

// migrate runs database migrations.
//
// range_start and range_end hold the event's [start, end) span as unix
// seconds, resolved in the local zone at write time. They only serve range
// queries; the event itself is rebuilt from the raw date/dateTime columns.
// source names the sync source that last wrote the row, empty for imports.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id              TEXT PRIMARY KEY,
			source          TEXT NOT NULL DEFAULT '',
			summary         TEXT NOT NULL DEFAULT '',
			description     TEXT NOT NULL DEFAULT '',
			location        TEXT NOT NULL DEFAULT '',
			start_date      TEXT NOT NULL DEFAULT '',
			start_datetime  TEXT NOT NULL DEFAULT '',
			start_tz        TEXT NOT NULL DEFAULT '',
			end_date        TEXT NOT NULL DEFAULT '',
			end_datetime    TEXT NOT NULL DEFAULT '',
			end_tz          TEXT NOT NULL DEFAULT '',
			status          TEXT NOT NULL DEFAULT 'confirmed' CHECK(status IN ('confirmed', 'tentative', 'cancelled', '')),
			color_id        TEXT NOT NULL DEFAULT '',
			attendees       TEXT,
			reminders       TEXT,
			created         TEXT NOT NULL DEFAULT '',
			updated         TEXT NOT NULL DEFAULT '',
			html_link       TEXT NOT NULL DEFAULT '',
			range_start     INTEGER NOT NULL,
			range_end       INTEGER NOT NULL,
			synced_at       DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_events_range ON events(range_start, range_end);
		CREATE INDEX IF NOT EXISTS idx_events_source ON events(source);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	return nil
}
