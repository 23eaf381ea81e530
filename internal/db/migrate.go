package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS work_items (
		id              TEXT PRIMARY KEY,
		title           TEXT NOT NULL,
		deadline        TEXT NOT NULL,
		strict          INTEGER NOT NULL DEFAULT 0 CHECK(strict IN (0,1)),
		required_hours  REAL NOT NULL CHECK(required_hours > 0),
		completed_hours REAL NOT NULL DEFAULT 0 CHECK(completed_hours >= 0),
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS events (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		start_at   TEXT NOT NULL,
		end_at     TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS planned_sessions (
		id           TEXT PRIMARY KEY,
		work_item_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		start_at     TEXT NOT NULL,
		end_at       TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS progress_logs (
		id           TEXT PRIMARY KEY,
		work_item_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		hours        REAL NOT NULL CHECK(hours > 0),
		note         TEXT NOT NULL DEFAULT '',
		logged_at    TEXT NOT NULL
	)`,

	`ALTER TABLE planned_sessions ADD COLUMN generated_by TEXT NOT NULL DEFAULT 'MANUAL'`,

	`CREATE INDEX IF NOT EXISTS idx_work_items_deadline ON work_items(deadline)`,
	`CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_at)`,
	`CREATE INDEX IF NOT EXISTS idx_planned_sessions_start ON planned_sessions(start_at)`,
	`CREATE INDEX IF NOT EXISTS idx_planned_sessions_item ON planned_sessions(work_item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_progress_logs_item ON progress_logs(work_item_id)`,
}
