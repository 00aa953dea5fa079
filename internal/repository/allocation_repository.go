package repository // repository defines data access for seating allocations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/exam-seating/internal/model"
)

// AllocationRepo reads the current allocation set and performs the one
// mutation allowed outside an allocation run: swapping two seats.
// Writing a new allocation set goes through the SeatingStore run
// transaction instead.
type AllocationRepo struct {
	db *sql.DB
}

// NewAllocationRepo constructs an AllocationRepo with the given DB handle.
func NewAllocationRepo(db *sql.DB) *AllocationRepo {
	return &AllocationRepo{db: db}
}

const allocationDetailColumns = `sa.roll_no, s.name, s.course, s.semester, s.email, s.subject_code,
	       sa.room_no, r.building, sa.row_num, sa.col_num, sa.seat_number, sa.allocation_method`

// GetByRoll returns the allocation of one student joined with the
// student and room details.  ErrNotAllocated is returned when the
// student has no seat in the current set.
func (r *AllocationRepo) GetByRoll(ctx context.Context, rollNo string) (*model.AllocationDetail, error) {
	q := `SELECT ` + allocationDetailColumns + `
	      FROM seating_allocations sa
	      JOIN students s ON s.roll_no = sa.roll_no
	      JOIN rooms r ON r.room_no = sa.room_no
	      WHERE sa.roll_no = ?`
	var d model.AllocationDetail
	err := r.db.QueryRowContext(ctx, q, rollNo).Scan(
		&d.RollNo, &d.Name, &d.Course, &d.Semester, &d.Email, &d.SubjectCode,
		&d.RoomNo, &d.Building, &d.RowNum, &d.ColNum, &d.SeatLabel, &d.Method,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotAllocated
		}
		return nil, err
	}
	return &d, nil
}

// ListAll returns every allocation with student and room details,
// ordered by room, then row, then column.  This is the export order.
func (r *AllocationRepo) ListAll(ctx context.Context) ([]model.AllocationDetail, error) {
	q := `SELECT ` + allocationDetailColumns + `
	      FROM seating_allocations sa
	      JOIN students s ON s.roll_no = sa.roll_no
	      JOIN rooms r ON r.room_no = sa.room_no
	      ORDER BY sa.room_no, sa.row_num, sa.col_num`
	return r.queryDetails(ctx, q)
}

// ListByRoom returns the allocations of a single room in row/column
// order, for the invigilator seat map and the per-room export.
func (r *AllocationRepo) ListByRoom(ctx context.Context, roomNo string) ([]model.AllocationDetail, error) {
	q := `SELECT ` + allocationDetailColumns + `
	      FROM seating_allocations sa
	      JOIN students s ON s.roll_no = sa.roll_no
	      JOIN rooms r ON r.room_no = sa.room_no
	      WHERE sa.room_no = ?
	      ORDER BY sa.row_num, sa.col_num`
	return r.queryDetails(ctx, q, roomNo)
}

func (r *AllocationRepo) queryDetails(ctx context.Context, q string, args ...interface{}) ([]model.AllocationDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AllocationDetail
	for rows.Next() {
		var d model.AllocationDetail
		if err := rows.Scan(
			&d.RollNo, &d.Name, &d.Course, &d.Semester, &d.Email, &d.SubjectCode,
			&d.RoomNo, &d.Building, &d.RowNum, &d.ColNum, &d.SeatLabel, &d.Method,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of allocation records in the current set.
func (r *AllocationRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seating_allocations`).Scan(&n)
	return n, err
}

// CountByRoom returns the number of allocated seats in one room.
func (r *AllocationRepo) CountByRoom(ctx context.Context, roomNo string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seating_allocations WHERE room_no = ?`, roomNo).Scan(&n)
	return n, err
}

// SwapSeats exchanges the seats of two allocated students and records
// the swap in the activity log, all in one transaction.  Either both
// records move or neither does.
func (r *AllocationRepo) SwapSeats(ctx context.Context, roll1, roll2, performedBy string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	a1, err := seatOf(ctx, tx, roll1)
	if err != nil {
		return err
	}
	a2, err := seatOf(ctx, tx, roll2)
	if err != nil {
		return err
	}

	const upd = `UPDATE seating_allocations
	             SET room_no = ?, row_num = ?, col_num = ?, seat_number = ?
	             WHERE roll_no = ?`
	// the unique seat constraint forbids landing on an occupied seat,
	// so park roll1 on an impossible row first
	if _, err = tx.ExecContext(ctx, upd, a2.RoomNo, -a2.RowNum, a2.ColNum, a2.SeatLabel, roll1); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, upd, a1.RoomNo, a1.RowNum, a1.ColNum, a1.SeatLabel, roll2); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, upd, a2.RoomNo, a2.RowNum, a2.ColNum, a2.SeatLabel, roll1); err != nil {
		return err
	}

	if performedBy == "" {
		performedBy = "system"
	}
	desc := fmt.Sprintf("Seat swap by %s: %s <-> %s (rooms: %s<->%s; seats: %s<->%s)",
		performedBy, roll1, roll2, a1.RoomNo, a2.RoomNo, a1.SeatLabel, a2.SeatLabel)
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO activity_log (activity_type, description) VALUES (?, ?)`,
		"seat_swap", desc); err != nil {
		return err
	}
	return tx.Commit()
}

func seatOf(ctx context.Context, tx *sql.Tx, rollNo string) (*model.Allocation, error) {
	const q = `SELECT roll_no, room_no, row_num, col_num, seat_number
	           FROM seating_allocations WHERE roll_no = ?`
	var a model.Allocation
	err := tx.QueryRowContext(ctx, q, rollNo).
		Scan(&a.RollNo, &a.RoomNo, &a.RowNum, &a.ColNum, &a.SeatLabel)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotAllocated, rollNo)
		}
		return nil, err
	}
	return &a, nil
}
