package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
)

// SQLiteProgressRepo implements ProgressRepo using a SQLite database.
type SQLiteProgressRepo struct {
	db db.DBTX
}

func NewSQLiteProgressRepo(db db.DBTX) *SQLiteProgressRepo {
	return &SQLiteProgressRepo{db: db}
}

func (r *SQLiteProgressRepo) Create(ctx context.Context, l *domain.ProgressLog) error {
	query := `INSERT INTO progress_logs (id, work_item_id, hours, note, logged_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, l.ID, l.WorkItemID, l.Hours, l.Note, formatTime(l.LoggedAt))
	if err != nil {
		return fmt.Errorf("inserting progress log: %w", err)
	}
	return nil
}

func (r *SQLiteProgressRepo) ListByWorkItem(ctx context.Context, workItemID string) ([]*domain.ProgressLog, error) {
	query := `SELECT id, work_item_id, hours, note, logged_at
		FROM progress_logs WHERE work_item_id = ? ORDER BY logged_at, id`
	rows, err := r.db.QueryContext(ctx, query, workItemID)
	if err != nil {
		return nil, fmt.Errorf("listing progress logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.ProgressLog
	for rows.Next() {
		var l domain.ProgressLog
		var loggedAtStr string
		if err := rows.Scan(&l.ID, &l.WorkItemID, &l.Hours, &l.Note, &loggedAtStr); err != nil {
			return nil, fmt.Errorf("scanning progress log: %w", err)
		}
		if l.LoggedAt, err = parseTime("logged_at", loggedAtStr); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress logs: %w", err)
	}
	return logs, nil
}
