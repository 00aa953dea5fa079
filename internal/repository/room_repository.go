package repository // repository defines data access for exam rooms

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/exam-seating/internal/model"
)

// RoomRepo provides access to exam rooms.  The ascending room-number
// order of ListAll is load-bearing: it fixes the seat-fill priority of
// the allocation engine.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// ListAll returns all rooms ordered by room number ascending.
func (r *RoomRepo) ListAll(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT room_no, building, seat_rows, seat_cols, capacity, created_at
	           FROM rooms
	           ORDER BY room_no`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Room
	for rows.Next() {
		var m model.Room
		if err := rows.Scan(&m.RoomNo, &m.Building, &m.Rows, &m.Columns, &m.Capacity, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByRoomNo retrieves a single room, returning ErrRoomNotFound when
// no row matches.
func (r *RoomRepo) GetByRoomNo(ctx context.Context, roomNo string) (*model.Room, error) {
	const q = `SELECT room_no, building, seat_rows, seat_cols, capacity, created_at
	           FROM rooms WHERE room_no = ?`
	var m model.Room
	err := r.db.QueryRowContext(ctx, q, roomNo).
		Scan(&m.RoomNo, &m.Building, &m.Rows, &m.Columns, &m.Capacity, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Count returns the number of rooms.
func (r *RoomRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&n)
	return n, err
}

// TotalCapacity sums the stored capacities of all rooms.  Used by the
// pre-allocation capacity check.
func (r *RoomRepo) TotalCapacity(ctx context.Context) (int, error) {
	var n sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT SUM(capacity) FROM rooms`).Scan(&n); err != nil {
		return 0, err
	}
	return int(n.Int64), nil
}

// ReplaceAll clears the room list and bulk-inserts the uploaded rooms
// in one transaction.
func (r *RoomRepo) ReplaceAll(ctx context.Context, rooms []model.Room) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// allocations reference rooms; replacing the layout drops them too
	if _, err := tx.ExecContext(ctx, `DELETE FROM seating_allocations`); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms`); err != nil {
		_ = tx.Rollback()
		return err
	}
	if len(rooms) > 0 {
		query := `INSERT INTO rooms (room_no, building, seat_rows, seat_cols, capacity) VALUES `
		args := make([]interface{}, 0, len(rooms)*5)
		for i, m := range rooms {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?)"
			args = append(args, m.RoomNo, m.Building, m.Rows, m.Columns, m.Capacity)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
