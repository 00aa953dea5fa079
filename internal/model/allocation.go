package model

import "time"

// Allocation maps one student to exactly one seat for the current
// allocation run.  Rows in `seating_allocations` are wholesale
// replaced at the start of every run; the only later mutation is a
// seat swap, which exchanges the seat columns of two records.
//
// Fields:
//  ID         – primary key identifier.
//  RollNo     – the allocated student's roll number.
//  RoomNo     – room the seat belongs to.
//  RowNum     – 1-based row of the seat within the room.
//  ColNum     – 1-based column of the seat within the row.
//  SeatLabel  – display label, e.g. "101-R2C3".
//  Method     – strategy that produced the record
//               ("rollwise" | "random" | "anti-cheating").
//  CreatedAt  – creation timestamp.
type Allocation struct {
	ID        uint64    // seating_allocations.id
	RollNo    string    // seating_allocations.roll_no
	RoomNo    string    // seating_allocations.room_no
	RowNum    int       // seating_allocations.row_num
	ColNum    int       // seating_allocations.col_num
	SeatLabel string    // seating_allocations.seat_number
	Method    string    // seating_allocations.allocation_method
	CreatedAt time.Time // seating_allocations.created_at
}

// AllocationDetail joins an allocation with the student and room rows
// it references.  It is what the lookup and export surfaces work with.
type AllocationDetail struct {
	RollNo      string `json:"roll_no"`
	Name        string `json:"name"`
	Course      string `json:"course"`
	Semester    string `json:"semester"`
	Email       string `json:"email"`
	SubjectCode string `json:"subject_code"`
	RoomNo      string `json:"room_no"`
	Building    string `json:"building"`
	RowNum      int    `json:"row"`
	ColNum      int    `json:"column"`
	SeatLabel   string `json:"seat_number"`
	Method      string `json:"allocation_method"`
}
