// Package export renders the current allocation set into the formats
// handed out to staff: XLSX seating plans and PDF admit cards.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/exam-seating/internal/model"
)

var planHeader = []interface{}{
	"Roll No", "Name", "Course", "Semester", "Subject Code", "Email",
	"Room No", "Building", "Seat Number", "Row", "Column", "Allocation Method",
}

var roomHeader = []interface{}{
	"Seat Number", "Row", "Column", "Roll No", "Name", "Course", "Subject Code", "Email",
}

// SeatingPlanWorkbook builds the full seating plan, one row per
// allocation in room/row/column order.
func SeatingPlanWorkbook(details []model.AllocationDetail) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Seating Plan"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &planHeader); err != nil {
		return nil, err
	}
	for i, d := range details {
		row := []interface{}{
			d.RollNo, d.Name, d.Course, d.Semester, d.SubjectCode, d.Email,
			d.RoomNo, d.Building, d.SeatLabel, d.RowNum, d.ColNum, d.Method,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// RoomListWorkbook builds the per-room invigilator list in seat order.
func RoomListWorkbook(roomNo string, details []model.AllocationDetail) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := fmt.Sprintf("Room %s", roomNo)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &roomHeader); err != nil {
		return nil, err
	}
	for i, d := range details {
		row := []interface{}{
			d.SeatLabel, d.RowNum, d.ColNum, d.RollNo, d.Name, d.Course, d.SubjectCode, d.Email,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
