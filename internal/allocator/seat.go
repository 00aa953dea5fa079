package allocator

import (
	"fmt"
	"sort"

	"github.com/iliyamo/exam-seating/internal/model"
)

// Seat is a derived position inside a room; it is never stored on its
// own.  Row and Col are 1-based.
type Seat struct {
	RoomNo string
	Row    int
	Col    int
	Label  string
}

// SeatLabel builds the display label for a seat, e.g. "101-R2C3".
func SeatLabel(roomNo string, row, col int) string {
	return fmt.Sprintf("%s-R%dC%d", roomNo, row, col)
}

// EnumerateSeats expands rooms into the full ordered seat sequence:
// rooms in ascending room-number order, and within each room row-major
// (row 1 all columns, then row 2, ...).  The sequence length equals
// the summed capacities and is the shared placement substrate for the
// sequential strategies.
func EnumerateSeats(rooms []model.Room) []Seat {
	rooms = sortedRooms(rooms)
	var seats []Seat
	for _, room := range rooms {
		for r := 1; r <= room.Rows; r++ {
			for c := 1; c <= room.Columns; c++ {
				seats = append(seats, Seat{
					RoomNo: room.RoomNo,
					Row:    r,
					Col:    c,
					Label:  SeatLabel(room.RoomNo, r, c),
				})
			}
		}
	}
	return seats
}

// sortedRooms returns a copy of rooms ordered by ascending room
// number, so the fill order does not depend on how the caller loaded
// them.
func sortedRooms(rooms []model.Room) []model.Room {
	out := make([]model.Room, len(rooms))
	copy(out, rooms)
	sort.SliceStable(out, func(i, j int) bool { return out[i].RoomNo < out[j].RoomNo })
	return out
}
