package allocator

import (
	"context"

	"github.com/iliyamo/exam-seating/internal/model"
)

// Store is the persistence surface the engine needs.  The SQL
// implementation lives in the repository package; tests supply an
// in-memory fake.
type Store interface {
	// FetchStudents returns the full current roster.
	FetchStudents(ctx context.Context) ([]model.Student, error)
	// FetchRooms returns all rooms in ascending room-number order.
	FetchRooms(ctx context.Context) ([]model.Room, error)
	// Begin opens the unit of work for one allocation run.
	Begin(ctx context.Context) (RunTx, error)
}

// RunTx is the transaction covering a single allocation run: the
// clear of the previous run, every new allocation record and the
// activity-log entry either all become visible together or, on a
// persistence failure, not at all.
type RunTx interface {
	ClearAllocations(ctx context.Context) error
	SaveAllocation(ctx context.Context, a *model.Allocation) error
	Log(ctx context.Context, activityType, description string) error
	Commit() error
	Rollback() error
}
