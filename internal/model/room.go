package model

import "time"

// Room describes an exam hall as stored in the `rooms` table.  Each
// room exposes a rectangular seat grid of Rows x Columns; Capacity is
// stored redundantly and must equal Rows*Columns.  Rooms are always
// read back in ascending room-number order, which fixes the fill
// priority across rooms during allocation.
//
// Fields:
//  RoomNo    – unique room number identifying the hall.
//  Building  – building label the room belongs to.
//  Rows      – number of seat rows (>= 1).
//  Columns   – number of seat columns (>= 1).
//  Capacity  – total seats, equals Rows*Columns.
//  CreatedAt – timestamp when the record was imported.
type Room struct {
	RoomNo    string    // rooms.room_no
	Building  string    // rooms.building
	Rows      int       // rooms.seat_rows
	Columns   int       // rooms.seat_cols
	Capacity  int       // rooms.capacity
	CreatedAt time.Time // rooms.created_at
}
