package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/exam-seating/internal/model"
)

func sampleDetails() []model.AllocationDetail {
	return []model.AllocationDetail{
		{
			RollNo: "S1", Name: "Alice Rahimi", Course: "BSc CS", Semester: "3",
			Email: "alice@example.edu", SubjectCode: "MA101",
			RoomNo: "101", Building: "Main Block", RowNum: 1, ColNum: 1,
			SeatLabel: "101-R1C1", Method: "rollwise",
		},
		{
			RollNo: "S2", Name: "Bijan Tan", Course: "BSc CS", Semester: "3",
			Email: "bijan@example.edu", SubjectCode: "PH102",
			RoomNo: "101", Building: "Main Block", RowNum: 1, ColNum: 2,
			SeatLabel: "101-R1C2", Method: "rollwise",
		},
	}
}

func TestSeatingPlanWorkbook(t *testing.T) {
	f, err := SeatingPlanWorkbook(sampleDetails())
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Seating Plan", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Roll No", got)

	got, err = f.GetCellValue("Seating Plan", "I2")
	require.NoError(t, err)
	assert.Equal(t, "101-R1C1", got)

	got, err = f.GetCellValue("Seating Plan", "A3")
	require.NoError(t, err)
	assert.Equal(t, "S2", got)
}

func TestRoomListWorkbook(t *testing.T) {
	f, err := RoomListWorkbook("101", sampleDetails())
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Room 101", "A2")
	require.NoError(t, err)
	assert.Equal(t, "101-R1C1", got)

	got, err = f.GetCellValue("Room 101", "D3")
	require.NoError(t, err)
	assert.Equal(t, "S2", got)
}

func TestAdmitCardPDF(t *testing.T) {
	d := sampleDetails()[0]
	pdfBytes, err := AdmitCardPDF(&d)
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
