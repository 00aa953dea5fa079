package model

import "time"

// Student represents one examinee as stored in the `students` table.
// Students are identified by their roll number, which is unique across
// the whole roster.  The subject code is what the anti-cheating
// allocator groups by.
//
// Fields:
//  RollNo      – unique roll number identifying the student.
//  Name        – full name.
//  Course      – course or programme the student is enrolled in.
//  Semester    – current semester label.
//  Email       – contact email address.
//  SubjectCode – code of the subject being examined; used for grouping.
//  CreatedAt   – timestamp when the record was imported.
type Student struct {
	RollNo      string    // students.roll_no
	Name        string    // students.name
	Course      string    // students.course
	Semester    string    // students.semester
	Email       string    // students.email
	SubjectCode string    // students.subject_code
	CreatedAt   time.Time // students.created_at
}
