package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/exam-seating/internal/model"
)

// ActivityRepo appends to and reads from the activity log.
type ActivityRepo struct {
	db *sql.DB
}

// NewActivityRepo constructs an ActivityRepo with the given DB handle.
func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

// Log appends one activity entry.
func (r *ActivityRepo) Log(ctx context.Context, activityType, description string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_log (activity_type, description) VALUES (?, ?)`,
		activityType, description)
	return err
}

// Recent returns the latest entries, newest first.
func (r *ActivityRepo) Recent(ctx context.Context, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, activity_type, description, created_at
		 FROM activity_log ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
