// Package allocator implements the exam seat allocation engine: three
// interchangeable strategies that place the current student roster
// into the seat grids of the available rooms.  Every run wholesale
// replaces the previous allocation set; the clear is the first thing a
// run does and survives even when the run itself aborts on bad input.
package allocator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/exam-seating/internal/model"
)

// Method tags written into every allocation record.
const (
	MethodRollwise     = "rollwise"
	MethodRandom       = "random"
	MethodAntiCheating = "anti-cheating"
)

// ErrNoData is returned when the roster or the room list is empty.
// The previous allocation set has already been cleared by the time
// this is reported.
var ErrNoData = errors.New("no students or rooms available")

// ErrInsufficientGroups is returned by the anti-cheating strategy when
// fewer than two distinct subject codes exist; the zig-zag pattern
// needs two groups to alternate between.
var ErrInsufficientGroups = errors.New("need at least two different subject groups for anti-cheating allocation")

// Result summarizes a completed allocation run.
type Result struct {
	RunID     string `json:"run_id"`
	Method    string `json:"method"`
	Allocated int    `json:"allocated"`
	Message   string `json:"message"`
}

// Engine runs allocation strategies against a Store.  It is not safe
// for concurrent runs; callers serialize access (the HTTP layer runs
// allocations from a single admin endpoint).
type Engine struct {
	store Store
	rng   *rand.Rand
}

// New builds an Engine.  The random source drives the random and
// anti-cheating strategies; passing nil falls back to a time-seeded
// source.  Tests inject a fixed seed for reproducible outcomes.
func New(store Store, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{store: store, rng: rng}
}

// assignment pairs one student with the seat chosen for them.
type assignment struct {
	student model.Student
	seat    Seat
}

// AllocateRollwise seats students in ascending roll-number order onto
// the seat sequence.  Students beyond the total capacity stay
// unallocated; that is reported in the count, not as an error.
func (e *Engine) AllocateRollwise(ctx context.Context) (*Result, error) {
	return e.run(ctx, MethodRollwise, func(students []model.Student, rooms []model.Room) ([]assignment, error) {
		ordered := make([]model.Student, len(students))
		copy(ordered, students)
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].RollNo < ordered[j].RollNo })
		return pairSequential(ordered, EnumerateSeats(rooms)), nil
	})
}

// AllocateRandom is rollwise with a uniform shuffle of the roster in
// place of the sort.
func (e *Engine) AllocateRandom(ctx context.Context) (*Result, error) {
	return e.run(ctx, MethodRandom, func(students []model.Student, rooms []model.Room) ([]assignment, error) {
		shuffled := make([]model.Student, len(students))
		copy(shuffled, students)
		e.rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		return pairSequential(shuffled, EnumerateSeats(rooms)), nil
	})
}

// AllocateAntiCheating seats students from two different subject
// groups in an alternating zig-zag so no two neighbours in a row share
// a subject while both groups still have members.  Groups are taken in
// first-seen roster order; subject codes beyond the first two are left
// out of the run entirely, which is the documented product behaviour.
func (e *Engine) AllocateAntiCheating(ctx context.Context) (*Result, error) {
	return e.run(ctx, MethodAntiCheating, e.zigzag)
}

// pairSequential assigns the i-th student to the i-th seat and stops
// at whichever list runs out first.
func pairSequential(students []model.Student, seats []Seat) []assignment {
	n := len(students)
	if len(seats) < n {
		n = len(seats)
	}
	out := make([]assignment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, assignment{student: students[i], seat: seats[i]})
	}
	return out
}

// zigzag partitions the roster by subject code and fills each room
// row by row, alternating the two groups by column parity.  Even row
// indexes start with group A, odd rows with group B.  When the
// designated group is exhausted the seat falls back to whichever group
// still has members (A checked first); when both are empty the seat is
// skipped and the scan continues.
func (e *Engine) zigzag(students []model.Student, rooms []model.Room) ([]assignment, error) {
	groups := make(map[string][]model.Student)
	var codes []string
	for _, s := range students {
		if _, ok := groups[s.SubjectCode]; !ok {
			codes = append(codes, s.SubjectCode)
		}
		groups[s.SubjectCode] = append(groups[s.SubjectCode], s)
	}
	if len(codes) < 2 {
		return nil, ErrInsufficientGroups
	}

	groupA := groups[codes[0]]
	groupB := groups[codes[1]]
	e.rng.Shuffle(len(groupA), func(i, j int) { groupA[i], groupA[j] = groupA[j], groupA[i] })
	e.rng.Shuffle(len(groupB), func(i, j int) { groupB[i], groupB[j] = groupB[j], groupB[i] })

	var out []assignment
	ai, bi := 0, 0
	for _, room := range sortedRooms(rooms) {
		for r := 0; r < room.Rows; r++ {
			for c := 0; c < room.Columns; c++ {
				// row parity flips which group the even columns belong to
				wantA := (r%2 == 0) == (c%2 == 0)
				var s model.Student
				switch {
				case wantA && ai < len(groupA):
					s = groupA[ai]
					ai++
				case !wantA && bi < len(groupB):
					s = groupB[bi]
					bi++
				case ai < len(groupA):
					s = groupA[ai]
					ai++
				case bi < len(groupB):
					s = groupB[bi]
					bi++
				default:
					continue
				}
				out = append(out, assignment{
					student: s,
					seat:    Seat{RoomNo: room.RoomNo, Row: r + 1, Col: c + 1, Label: SeatLabel(room.RoomNo, r+1, c+1)},
				})
			}
		}
	}
	return out, nil
}

// run executes one allocation run: clear the previous set, fetch and
// validate inputs, place, persist, log, commit.  Input errors commit
// the clear so the replace semantics hold; persistence errors roll the
// whole run back.
func (e *Engine) run(ctx context.Context, method string, place func([]model.Student, []model.Room) ([]assignment, error)) (*Result, error) {
	tx, err := e.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin allocation run: %w", err)
	}
	if err := tx.ClearAllocations(ctx); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("clear allocations: %w", err)
	}

	students, err := e.store.FetchStudents(ctx)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("fetch students: %w", err)
	}
	rooms, err := e.store.FetchRooms(ctx)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("fetch rooms: %w", err)
	}
	if len(students) == 0 || len(rooms) == 0 {
		return nil, e.abort(tx, ErrNoData)
	}

	assignments, err := place(students, rooms)
	if err != nil {
		return nil, e.abort(tx, err)
	}

	for i := range assignments {
		a := &assignments[i]
		rec := &model.Allocation{
			RollNo:    a.student.RollNo,
			RoomNo:    a.seat.RoomNo,
			RowNum:    a.seat.Row,
			ColNum:    a.seat.Col,
			SeatLabel: a.seat.Label,
			Method:    method,
		}
		if err := tx.SaveAllocation(ctx, rec); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("save allocation for %s: %w", a.student.RollNo, err)
		}
	}

	runID := uuid.NewString()
	if err := tx.Log(ctx, "allocation", runDescription(method, len(assignments), runID)); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("log allocation run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit allocation run: %w", err)
	}

	return &Result{
		RunID:     runID,
		Method:    method,
		Allocated: len(assignments),
		Message:   runMessage(method, len(assignments)),
	}, nil
}

// abort commits the already-executed clear and reports the input
// error.  A failed commit takes precedence so the caller never
// mistakes a broken store for a clean validation failure.
func (e *Engine) abort(tx RunTx, cause error) error {
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cleared allocations: %w", err)
	}
	return cause
}

func runMessage(method string, n int) string {
	switch method {
	case MethodRandom:
		return fmt.Sprintf("Successfully allocated %d students randomly.", n)
	case MethodAntiCheating:
		return fmt.Sprintf("Successfully allocated %d students in anti-cheating zig-zag mode.", n)
	default:
		return fmt.Sprintf("Successfully allocated %d students rollwise.", n)
	}
}

func runDescription(method string, n int, runID string) string {
	switch method {
	case MethodRandom:
		return fmt.Sprintf("Random allocation completed: %d students allocated (run %s)", n, runID)
	case MethodAntiCheating:
		return fmt.Sprintf("Anti-cheating (zig-zag) allocation completed: %d students allocated (run %s)", n, runID)
	default:
		return fmt.Sprintf("Roll-wise allocation completed: %d students allocated (run %s)", n, runID)
	}
}
