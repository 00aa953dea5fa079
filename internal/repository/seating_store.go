package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/exam-seating/internal/allocator"
	"github.com/iliyamo/exam-seating/internal/model"
)

// SeatingStore adapts the SQL layer to the allocation engine's Store
// contract.  Reads go through the plain repositories; the clear,
// inserts and the activity-log entry of one run share a single
// database transaction.
type SeatingStore struct {
	db       *sql.DB
	students *StudentRepo
	rooms    *RoomRepo
}

// NewSeatingStore builds a SeatingStore over the shared DB handle.
func NewSeatingStore(db *sql.DB, students *StudentRepo, rooms *RoomRepo) *SeatingStore {
	return &SeatingStore{db: db, students: students, rooms: rooms}
}

// FetchStudents returns the current roster.
func (s *SeatingStore) FetchStudents(ctx context.Context) ([]model.Student, error) {
	return s.students.ListAll(ctx)
}

// FetchRooms returns all rooms in ascending room-number order.
func (s *SeatingStore) FetchRooms(ctx context.Context) ([]model.Room, error) {
	return s.rooms.ListAll(ctx)
}

// Begin opens the transaction covering one allocation run.
func (s *SeatingStore) Begin(ctx context.Context) (allocator.RunTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &runTx{tx: tx}, nil
}

type runTx struct {
	tx *sql.Tx
}

func (t *runTx) ClearAllocations(ctx context.Context) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM seating_allocations`)
	return err
}

func (t *runTx) SaveAllocation(ctx context.Context, a *model.Allocation) error {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO seating_allocations (roll_no, room_no, row_num, col_num, seat_number, allocation_method)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.RollNo, a.RoomNo, a.RowNum, a.ColNum, a.SeatLabel, a.Method)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

func (t *runTx) Log(ctx context.Context, activityType, description string) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO activity_log (activity_type, description) VALUES (?, ?)`,
		activityType, description)
	return err
}

func (t *runTx) Commit() error   { return t.tx.Commit() }
func (t *runTx) Rollback() error { return t.tx.Rollback() }
