package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
)

const sessionColumns = `id, work_item_id, start_at, end_at, created_at`

// SQLitePlannedSessionRepo implements PlannedSessionRepo using a SQLite database.
type SQLitePlannedSessionRepo struct {
	db db.DBTX
}

func NewSQLitePlannedSessionRepo(db db.DBTX) *SQLitePlannedSessionRepo {
	return &SQLitePlannedSessionRepo{db: db}
}

// ReplaceAll is only atomic when the repo is bound to a transaction.
func (r *SQLitePlannedSessionRepo) ReplaceAll(ctx context.Context, sessions []domain.Session, generatedBy domain.RescheduleTrigger) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM planned_sessions`); err != nil {
		return fmt.Errorf("clearing planned sessions: %w", err)
	}

	query := `INSERT INTO planned_sessions (` + sessionColumns + `, generated_by) VALUES (?, ?, ?, ?, ?, ?)`
	for _, s := range sessions {
		_, err := r.db.ExecContext(ctx, query,
			s.ID,
			s.WorkItemID,
			formatTime(s.Start),
			formatTime(s.End),
			formatTime(s.CreatedAt),
			string(generatedBy),
		)
		if err != nil {
			return fmt.Errorf("inserting planned session: %w", err)
		}
	}
	return nil
}

func (r *SQLitePlannedSessionRepo) List(ctx context.Context) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM planned_sessions ORDER BY start_at, work_item_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing planned sessions: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

func (r *SQLitePlannedSessionRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM planned_sessions
		WHERE start_at < ? AND end_at > ?
		ORDER BY start_at, work_item_id`
	rows, err := r.db.QueryContext(ctx, query, formatTime(to), formatTime(from))
	if err != nil {
		return nil, fmt.Errorf("listing planned sessions between: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

func (r *SQLitePlannedSessionRepo) ListByWorkItem(ctx context.Context, workItemID string) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM planned_sessions WHERE work_item_id = ? ORDER BY start_at`
	rows, err := r.db.QueryContext(ctx, query, workItemID)
	if err != nil {
		return nil, fmt.Errorf("listing planned sessions by work item: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	var sessions []*domain.Session
	for rows.Next() {
		var s domain.Session
		var startStr, endStr, createdAtStr string
		if err := rows.Scan(&s.ID, &s.WorkItemID, &startStr, &endStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning planned session: %w", err)
		}

		var err error
		if s.Start, err = parseTime("start_at", startStr); err != nil {
			return nil, err
		}
		if s.End, err = parseTime("end_at", endStr); err != nil {
			return nil, err
		}
		if s.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
			return nil, err
		}
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating planned sessions: %w", err)
	}
	return sessions, nil
}
