// Package repository holds the raw-SQL data access layer.  Sentinel
// errors defined here let handlers translate failure scenarios into
// HTTP statuses without inspecting driver errors.
package repository

import "errors"

// ErrStudentNotFound is returned when a roll-number lookup yields no row.
var ErrStudentNotFound = errors.New("student not found")

// ErrRoomNotFound is returned when a room lookup yields no row.
var ErrRoomNotFound = errors.New("room not found")

// ErrNotAllocated is returned when a student has no seat in the
// current allocation set.  Handlers translate this into a 404 with a
// hint to contact the exam office.
var ErrNotAllocated = errors.New("no seat allocation for this roll number")

// ErrEmailExists is returned when registration collides with an
// existing account.
var ErrEmailExists = errors.New("email already exists")
