// Package ingest parses uploaded roster files.  Students and rooms
// arrive as CSV or XLSX with a fixed header row; parsing validates the
// headers and basic integrity (no duplicate keys, sane grid sizes)
// before anything reaches the database.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/exam-seating/internal/model"
)

// ErrUnsupportedFormat is returned for extensions other than .csv and .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported file format, expected .csv or .xlsx")

var studentColumns = []string{"Roll No", "Name", "Course/Program", "Semester", "Email", "Subject Code"}
var roomColumns = []string{"Room No", "Building", "Rows", "Columns", "Capacity"}

// ParseStudents reads a roster file and returns the students in file
// order.  The filename only matters for its extension.
func ParseStudents(r io.Reader, filename string) ([]model.Student, error) {
	rows, err := readRows(r, filename)
	if err != nil {
		return nil, err
	}
	idx, err := headerIndex(rows, studentColumns)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []model.Student
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		s := model.Student{
			RollNo:      cell(row, idx["Roll No"]),
			Name:        cell(row, idx["Name"]),
			Course:      cell(row, idx["Course/Program"]),
			Semester:    cell(row, idx["Semester"]),
			Email:       cell(row, idx["Email"]),
			SubjectCode: cell(row, idx["Subject Code"]),
		}
		if s.RollNo == "" {
			return nil, fmt.Errorf("row %d: empty roll number", len(out)+2)
		}
		if seen[s.RollNo] {
			return nil, fmt.Errorf("duplicate roll number %q in uploaded file", s.RollNo)
		}
		seen[s.RollNo] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, errors.New("uploaded file contains no student rows")
	}
	return out, nil
}

// ParseRooms reads a rooms file.  Rows/Columns must be positive and
// the stored capacity must equal their product, since the allocator
// derives the seat grid from them.
func ParseRooms(r io.Reader, filename string) ([]model.Room, error) {
	rows, err := readRows(r, filename)
	if err != nil {
		return nil, err
	}
	idx, err := headerIndex(rows, roomColumns)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []model.Room
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		m := model.Room{
			RoomNo:   cell(row, idx["Room No"]),
			Building: cell(row, idx["Building"]),
		}
		if m.RoomNo == "" {
			return nil, fmt.Errorf("row %d: empty room number", len(out)+2)
		}
		if seen[m.RoomNo] {
			return nil, fmt.Errorf("duplicate room number %q in uploaded file", m.RoomNo)
		}
		seen[m.RoomNo] = true

		if m.Rows, err = positiveInt(cell(row, idx["Rows"])); err != nil {
			return nil, fmt.Errorf("room %s: rows: %w", m.RoomNo, err)
		}
		if m.Columns, err = positiveInt(cell(row, idx["Columns"])); err != nil {
			return nil, fmt.Errorf("room %s: columns: %w", m.RoomNo, err)
		}
		if m.Capacity, err = positiveInt(cell(row, idx["Capacity"])); err != nil {
			return nil, fmt.Errorf("room %s: capacity: %w", m.RoomNo, err)
		}
		if m.Capacity != m.Rows*m.Columns {
			return nil, fmt.Errorf("room %s: capacity %d does not match %dx%d grid",
				m.RoomNo, m.Capacity, m.Rows, m.Columns)
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, errors.New("uploaded file contains no room rows")
	}
	return out, nil
}

// readRows turns the upload into a uniform [][]string regardless of format.
func readRows(r io.Reader, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1 // ragged rows are handled per cell
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		return rows, nil
	case ".xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("read xlsx: %w", err)
		}
		defer f.Close()
		rows, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, fmt.Errorf("read xlsx rows: %w", err)
		}
		return rows, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// headerIndex maps required column names to their positions in the
// header row, case-insensitively.
func headerIndex(rows [][]string, required []string) (map[string]int, error) {
	if len(rows) == 0 {
		return nil, errors.New("uploaded file is empty")
	}
	byName := map[string]int{}
	for i, h := range rows[0] {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}
	idx := make(map[string]int, len(required))
	var missing []string
	for _, col := range required {
		pos, ok := byName[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = pos
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns in uploaded file: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
