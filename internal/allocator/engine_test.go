package allocator_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/exam-seating/internal/allocator"
	"github.com/iliyamo/exam-seating/internal/model"
)

// fakeStore keeps the whole dataset in memory and applies a run's
// writes only on Commit, mirroring the transactional store contract.
type fakeStore struct {
	students    []model.Student
	rooms       []model.Room
	allocations []model.Allocation
	activities  []string
	failSaveAt  int // fail the nth SaveAllocation call when > 0
}

func (s *fakeStore) FetchStudents(context.Context) ([]model.Student, error) { return s.students, nil }
func (s *fakeStore) FetchRooms(context.Context) ([]model.Room, error)       { return s.rooms, nil }
func (s *fakeStore) Begin(context.Context) (allocator.RunTx, error) {
	return &fakeTx{store: s}, nil
}

type fakeTx struct {
	store     *fakeStore
	cleared   bool
	saves     []model.Allocation
	logs      []string
	saveCalls int
}

func (t *fakeTx) ClearAllocations(context.Context) error { t.cleared = true; return nil }

func (t *fakeTx) SaveAllocation(_ context.Context, a *model.Allocation) error {
	t.saveCalls++
	if t.store.failSaveAt > 0 && t.saveCalls >= t.store.failSaveAt {
		return errors.New("insert failed")
	}
	t.saves = append(t.saves, *a)
	return nil
}

func (t *fakeTx) Log(_ context.Context, activityType, description string) error {
	t.logs = append(t.logs, activityType+": "+description)
	return nil
}

func (t *fakeTx) Commit() error {
	if t.cleared {
		t.store.allocations = nil
	}
	t.store.allocations = append(t.store.allocations, t.saves...)
	t.store.activities = append(t.store.activities, t.logs...)
	return nil
}

func (t *fakeTx) Rollback() error { return nil }

func student(roll, code string) model.Student {
	return model.Student{RollNo: roll, Name: "Student " + roll, SubjectCode: code}
}

func room(no string, rows, cols int) model.Room {
	return model.Room{RoomNo: no, Building: "Main", Rows: rows, Columns: cols, Capacity: rows * cols}
}

func seeded(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

func TestEnumerateSeatsRowMajorAcrossRooms(t *testing.T) {
	seats := allocator.EnumerateSeats([]model.Room{
		room("102", 1, 2), // deliberately out of order
		room("101", 2, 2),
	})
	require.Len(t, seats, 6)
	labels := make([]string, 0, len(seats))
	for _, s := range seats {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{
		"101-R1C1", "101-R1C2", "101-R2C1", "101-R2C2",
		"102-R1C1", "102-R1C2",
	}, labels)
}

func TestRollwisePlacesSortedRollsOntoSeatSequence(t *testing.T) {
	store := &fakeStore{
		students: []model.Student{
			student("S3", "MA101"), student("S1", "MA101"), student("S5", "PH102"),
			student("S2", "PH102"), student("S4", "MA101"),
		},
		rooms: []model.Room{room("101", 2, 2), room("102", 1, 2)},
	}
	eng := allocator.New(store, seeded(1))

	res, err := eng.AllocateRollwise(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, res.Allocated)
	assert.Equal(t, allocator.MethodRollwise, res.Method)
	assert.NotEmpty(t, res.RunID)

	require.Len(t, store.allocations, 5)
	want := map[string]string{
		"S1": "101-R1C1",
		"S2": "101-R1C2",
		"S3": "101-R2C1",
		"S4": "101-R2C2",
		"S5": "102-R1C1",
	}
	for _, a := range store.allocations {
		assert.Equal(t, want[a.RollNo], a.SeatLabel)
		assert.Equal(t, allocator.MethodRollwise, a.Method)
	}
	require.Len(t, store.activities, 1)
	assert.Contains(t, store.activities[0], "Roll-wise allocation completed: 5 students")
}

func TestRollwiseTruncatesBeyondCapacity(t *testing.T) {
	store := &fakeStore{rooms: []model.Room{room("101", 1, 2)}}
	for i := 1; i <= 5; i++ {
		store.students = append(store.students, student(fmt.Sprintf("S%d", i), "MA101"))
	}
	eng := allocator.New(store, seeded(1))

	res, err := eng.AllocateRollwise(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Allocated)
	require.Len(t, store.allocations, 2)
	assert.Equal(t, "S1", store.allocations[0].RollNo)
	assert.Equal(t, "S2", store.allocations[1].RollNo)
}

func TestRollwiseDeterministicAcrossRuns(t *testing.T) {
	store := &fakeStore{
		students: []model.Student{student("S2", "A"), student("S1", "B"), student("S3", "A")},
		rooms:    []model.Room{room("201", 2, 2)},
	}
	eng := allocator.New(store, seeded(7))

	_, err := eng.AllocateRollwise(context.Background())
	require.NoError(t, err)
	first := append([]model.Allocation(nil), store.allocations...)

	_, err = eng.AllocateRollwise(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, store.allocations)
}

func TestRandomIsInjectionOntoSeatPrefix(t *testing.T) {
	store := &fakeStore{rooms: []model.Room{room("101", 3, 4)}}
	for i := 0; i < 10; i++ {
		store.students = append(store.students, student(fmt.Sprintf("R%02d", i), "MA101"))
	}
	eng := allocator.New(store, seeded(42))

	res, err := eng.AllocateRandom(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, res.Allocated)

	seatSeq := allocator.EnumerateSeats(store.rooms)
	seenRolls := map[string]bool{}
	for i, a := range store.allocations {
		assert.False(t, seenRolls[a.RollNo], "student %s allocated twice", a.RollNo)
		seenRolls[a.RollNo] = true
		// the occupied seats are exactly the prefix of the sequence
		assert.Equal(t, seatSeq[i].Label, a.SeatLabel)
		assert.Equal(t, allocator.MethodRandom, a.Method)
	}
}

func TestRandomOrderVariesWithSeed(t *testing.T) {
	orders := map[string]bool{}
	for seed := int64(1); seed <= 20; seed++ {
		store := &fakeStore{rooms: []model.Room{room("101", 2, 5)}}
		for i := 0; i < 10; i++ {
			store.students = append(store.students, student(fmt.Sprintf("R%02d", i), "MA101"))
		}
		eng := allocator.New(store, seeded(seed))
		_, err := eng.AllocateRandom(context.Background())
		require.NoError(t, err)

		key := ""
		for _, a := range store.allocations {
			key += a.RollNo + ","
		}
		orders[key] = true
	}
	assert.Greater(t, len(orders), 1, "20 seeds should not all yield the same permutation")
}

func TestAntiCheatingNoAdjacentSameSubjectWithinRows(t *testing.T) {
	store := &fakeStore{rooms: []model.Room{room("101", 2, 4)}}
	for i := 0; i < 4; i++ {
		store.students = append(store.students, student(fmt.Sprintf("A%d", i), "MA101"))
		store.students = append(store.students, student(fmt.Sprintf("B%d", i), "PH102"))
	}
	eng := allocator.New(store, seeded(3))

	res, err := eng.AllocateAntiCheating(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, res.Allocated)

	codeByRoll := map[string]string{}
	for _, s := range store.students {
		codeByRoll[s.RollNo] = s.SubjectCode
	}
	occupied := map[[2]int]string{} // (row, col) -> subject code
	for _, a := range store.allocations {
		occupied[[2]int{a.RowNum, a.ColNum}] = codeByRoll[a.RollNo]
	}
	for pos, code := range occupied {
		if neighbour, ok := occupied[[2]int{pos[0], pos[1] + 1}]; ok {
			assert.NotEqual(t, code, neighbour, "same subject at row %d cols %d/%d", pos[0], pos[1], pos[1]+1)
		}
	}
}

func TestAntiCheatingPartialFillLeavesRemainderUnseated(t *testing.T) {
	store := &fakeStore{rooms: []model.Room{room("101", 2, 2)}}
	for i := 0; i < 3; i++ {
		store.students = append(store.students, student(fmt.Sprintf("A%d", i), "MA101"))
		store.students = append(store.students, student(fmt.Sprintf("B%d", i), "PH102"))
	}
	eng := allocator.New(store, seeded(9))

	res, err := eng.AllocateAntiCheating(context.Background())
	require.NoError(t, err)
	// 6 students into 4 seats: capacity bounds the run, 2 stay unseated
	assert.Equal(t, 4, res.Allocated)
	require.Len(t, store.allocations, 4)

	codeByRoll := map[string]string{}
	for _, s := range store.students {
		codeByRoll[s.RollNo] = s.SubjectCode
	}
	byPos := map[[2]int]string{}
	for _, a := range store.allocations {
		byPos[[2]int{a.RowNum, a.ColNum}] = codeByRoll[a.RollNo]
	}
	// row 1 alternates, row 2 starts with the opposite group
	assert.NotEqual(t, byPos[[2]int{1, 1}], byPos[[2]int{1, 2}])
	assert.NotEqual(t, byPos[[2]int{2, 1}], byPos[[2]int{2, 2}])
	assert.NotEqual(t, byPos[[2]int{1, 1}], byPos[[2]int{2, 1}])
}

func TestAntiCheatingSpilloverFillsLeftoverSeats(t *testing.T) {
	store := &fakeStore{rooms: []model.Room{room("101", 2, 3)}}
	for i := 0; i < 5; i++ {
		store.students = append(store.students, student(fmt.Sprintf("A%d", i), "MA101"))
	}
	store.students = append(store.students, student("B0", "PH102"))
	eng := allocator.New(store, seeded(5))

	res, err := eng.AllocateAntiCheating(context.Background())
	require.NoError(t, err)
	// one group runs dry mid-scan; the other spills into its seats
	assert.Equal(t, 6, res.Allocated)
	require.Len(t, store.allocations, 6)
}

func TestAntiCheatingSingleGroupFailsAfterClear(t *testing.T) {
	store := &fakeStore{
		students:    []model.Student{student("S1", "MA101"), student("S2", "MA101")},
		rooms:       []model.Room{room("101", 2, 2)},
		allocations: []model.Allocation{{RollNo: "OLD", SeatLabel: "101-R1C1"}},
	}
	eng := allocator.New(store, seeded(1))

	res, err := eng.AllocateAntiCheating(context.Background())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, allocator.ErrInsufficientGroups)
	// the run still replaced (cleared) the previous allocation set
	assert.Empty(t, store.allocations)
}

func TestAntiCheatingExcludesGroupsBeyondFirstTwo(t *testing.T) {
	store := &fakeStore{rooms: []model.Room{room("101", 4, 4)}}
	for i := 0; i < 3; i++ {
		store.students = append(store.students, student(fmt.Sprintf("A%d", i), "MA101"))
		store.students = append(store.students, student(fmt.Sprintf("B%d", i), "PH102"))
		store.students = append(store.students, student(fmt.Sprintf("C%d", i), "CH103"))
	}
	eng := allocator.New(store, seeded(11))

	res, err := eng.AllocateAntiCheating(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, res.Allocated)
	for _, a := range store.allocations {
		assert.NotContains(t, a.RollNo, "C", "third subject group must not be seated")
	}
}

func TestEmptyInputsFailAndLeaveNoRecords(t *testing.T) {
	cases := []struct {
		name  string
		store *fakeStore
	}{
		{"no students", &fakeStore{rooms: []model.Room{room("101", 2, 2)}}},
		{"no rooms", &fakeStore{students: []model.Student{student("S1", "MA101")}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.store.allocations = []model.Allocation{{RollNo: "OLD"}}
			eng := allocator.New(tc.store, seeded(1))

			for _, run := range []func(context.Context) (*allocator.Result, error){
				eng.AllocateRollwise, eng.AllocateRandom, eng.AllocateAntiCheating,
			} {
				res, err := run(context.Background())
				assert.Nil(t, res)
				assert.ErrorIs(t, err, allocator.ErrNoData)
				assert.Empty(t, tc.store.allocations)
			}
		})
	}
}

func TestPersistenceFailureRollsBackWholeRun(t *testing.T) {
	store := &fakeStore{
		rooms:       []model.Room{room("101", 2, 2)},
		allocations: []model.Allocation{{RollNo: "OLD", SeatLabel: "101-R1C1"}},
		failSaveAt:  3,
	}
	for i := 1; i <= 4; i++ {
		store.students = append(store.students, student(fmt.Sprintf("S%d", i), "MA101"))
	}
	eng := allocator.New(store, seeded(1))

	res, err := eng.AllocateRollwise(context.Background())
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save allocation")
	// rollback keeps the pre-run allocation set intact
	require.Len(t, store.allocations, 1)
	assert.Equal(t, "OLD", store.allocations[0].RollNo)
	assert.Empty(t, store.activities)
}
