package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
)

// workItemColumns is the canonical SELECT column list for work_items.
const workItemColumns = `id, title, deadline, strict, required_hours, completed_hours, created_at, updated_at`

// SQLiteWorkItemRepo implements WorkItemRepo using a SQLite database.
type SQLiteWorkItemRepo struct {
	db db.DBTX
}

// NewSQLiteWorkItemRepo creates a new SQLiteWorkItemRepo.
func NewSQLiteWorkItemRepo(db db.DBTX) *SQLiteWorkItemRepo {
	return &SQLiteWorkItemRepo{db: db}
}

func (r *SQLiteWorkItemRepo) Create(ctx context.Context, w *domain.WorkItem) error {
	query := `INSERT INTO work_items (` + workItemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.Title,
		formatTime(w.Deadline),
		boolToInt(w.Strict),
		w.RequiredHours,
		w.CompletedHours,
		formatTime(w.CreatedAt),
		formatTime(w.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work item: %w", err)
	}
	return nil
}

func (r *SQLiteWorkItemRepo) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE id = ?`
	w, err := scanWorkItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("work item %s: %w", id, ErrNotFound)
	}
	return w, err
}

func (r *SQLiteWorkItemRepo) List(ctx context.Context, includeRetired bool) ([]*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items`
	if !includeRetired {
		query += ` WHERE completed_hours < required_hours`
	}
	query += ` ORDER BY deadline, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing work items: %w", err)
	}
	defer rows.Close()

	var items []*domain.WorkItem
	for rows.Next() {
		w, err := scanWorkItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work items: %w", err)
	}
	return items, nil
}

func (r *SQLiteWorkItemRepo) Update(ctx context.Context, w *domain.WorkItem) error {
	query := `UPDATE work_items SET title = ?, deadline = ?, strict = ?,
		required_hours = ?, completed_hours = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		w.Title,
		formatTime(w.Deadline),
		boolToInt(w.Strict),
		w.RequiredHours,
		w.CompletedHours,
		formatTime(w.UpdatedAt),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work item: %w", err)
	}
	return requireAffected(res, "work item", w.ID)
}

func (r *SQLiteWorkItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM work_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work item: %w", err)
	}
	return requireAffected(res, "work item", id)
}

func scanWorkItem(row rowScanner) (*domain.WorkItem, error) {
	var w domain.WorkItem
	var deadlineStr, createdAtStr, updatedAtStr string
	var strictInt int

	err := row.Scan(&w.ID, &w.Title, &deadlineStr, &strictInt,
		&w.RequiredHours, &w.CompletedHours, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work item: %w", err)
	}

	w.Strict = intToBool(strictInt)
	if w.Deadline, err = parseTime("deadline", deadlineStr); err != nil {
		return nil, err
	}
	if w.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if w.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &w, nil
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}
