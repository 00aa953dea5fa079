package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/exam-seating/internal/model"
)

// StudentRepo provides access to the students roster.  Uploads replace
// the whole roster, so besides lookups it only exposes ReplaceAll.
type StudentRepo struct {
	db *sql.DB
}

// NewStudentRepo constructs a StudentRepo with the given DB handle.
func NewStudentRepo(db *sql.DB) *StudentRepo {
	return &StudentRepo{db: db}
}

// ListAll returns the full roster ordered by roll number ascending.
func (r *StudentRepo) ListAll(ctx context.Context) ([]model.Student, error) {
	const q = `SELECT roll_no, name, course, semester, email, subject_code, created_at
	           FROM students
	           ORDER BY roll_no`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.RollNo, &s.Name, &s.Course, &s.Semester, &s.Email, &s.SubjectCode, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByRoll retrieves a single student.  Returns ErrStudentNotFound
// when no row matches.
func (r *StudentRepo) GetByRoll(ctx context.Context, rollNo string) (*model.Student, error) {
	const q = `SELECT roll_no, name, course, semester, email, subject_code, created_at
	           FROM students WHERE roll_no = ?`
	var s model.Student
	err := r.db.QueryRowContext(ctx, q, rollNo).
		Scan(&s.RollNo, &s.Name, &s.Course, &s.Semester, &s.Email, &s.SubjectCode, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Count returns the number of students currently on the roster.
func (r *StudentRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&n)
	return n, err
}

// ReplaceAll clears the roster and bulk-inserts the uploaded students
// in one transaction, so a failed upload never leaves a half-replaced
// roster behind.
func (r *StudentRepo) ReplaceAll(ctx context.Context, students []model.Student) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// allocations reference students; a new roster invalidates them anyway
	if _, err := tx.ExecContext(ctx, `DELETE FROM seating_allocations`); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM students`); err != nil {
		_ = tx.Rollback()
		return err
	}
	if len(students) > 0 {
		query := `INSERT INTO students (roll_no, name, course, semester, email, subject_code) VALUES `
		args := make([]interface{}, 0, len(students)*6)
		for i, s := range students {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?, ?)"
			args = append(args, s.RollNo, s.Name, s.Course, s.Semester, s.Email, s.SubjectCode)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
