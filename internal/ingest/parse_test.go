package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const studentsCSV = `Roll No,Name,Course/Program,Semester,Email,Subject Code
S1,Alice Rahimi,BSc CS,3,alice@example.edu,MA101
S2,Bijan Tan,BSc CS,3,bijan@example.edu,PH102
S3,Chitra Rao,BSc Math,5,chitra@example.edu,MA101
`

func TestParseStudentsCSV(t *testing.T) {
	students, err := ParseStudents(strings.NewReader(studentsCSV), "students.csv")
	require.NoError(t, err)
	require.Len(t, students, 3)
	assert.Equal(t, "S2", students[1].RollNo)
	assert.Equal(t, "PH102", students[1].SubjectCode)
	assert.Equal(t, "alice@example.edu", students[0].Email)
}

func TestParseStudentsMissingColumn(t *testing.T) {
	csv := "Roll No,Name\nS1,Alice\n"
	_, err := ParseStudents(strings.NewReader(csv), "students.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")
	assert.Contains(t, err.Error(), "Subject Code")
}

func TestParseStudentsDuplicateRoll(t *testing.T) {
	csv := studentsCSV + "S1,Dup,BSc CS,3,dup@example.edu,MA101\n"
	_, err := ParseStudents(strings.NewReader(csv), "students.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate roll number "S1"`)
}

func TestParseStudentsUnsupportedFormat(t *testing.T) {
	_, err := ParseStudents(strings.NewReader(studentsCSV), "students.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseRoomsCSV(t *testing.T) {
	csv := `Room No,Building,Rows,Columns,Capacity
101,Main Block,2,2,4
102,Main Block,1,2,2
`
	rooms, err := ParseRooms(strings.NewReader(csv), "rooms.csv")
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, 4, rooms[0].Capacity)
	assert.Equal(t, 1, rooms[1].Rows)
}

func TestParseRoomsCapacityMismatch(t *testing.T) {
	csv := "Room No,Building,Rows,Columns,Capacity\n101,Main,2,2,5\n"
	_, err := ParseRooms(strings.NewReader(csv), "rooms.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match 2x2 grid")
}

func TestParseRoomsRejectsNonPositiveGrid(t *testing.T) {
	csv := "Room No,Building,Rows,Columns,Capacity\n101,Main,0,2,0\n"
	_, err := ParseRooms(strings.NewReader(csv), "rooms.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows")
}

func TestParseStudentsXLSX(t *testing.T) {
	f := excelize.NewFile()
	header := []string{"Roll No", "Name", "Course/Program", "Semester", "Email", "Subject Code"}
	for i, h := range header {
		cellName, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cellName, h))
	}
	values := []string{"S9", "Dana Iqbal", "BSc Physics", "1", "dana@example.edu", "PH102"}
	for i, v := range values {
		cellName, err := excelize.CoordinatesToCellName(i+1, 2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cellName, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	students, err := ParseStudents(buf, "roster.xlsx")
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "S9", students[0].RollNo)
	assert.Equal(t, "PH102", students[0].SubjectCode)
}
