package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/iliyamo/exam-seating/internal/model"
)

// admit card page geometry in millimetres (A4 portrait)
const (
	cardMargin = 12.0
	labelX     = 30.0
	valueX     = 95.0
	qrSize     = 48.0
)

// AdmitCardPDF renders one student's admit card: exam details, seat
// assignment, a QR payload for gate verification and the standing
// instructions.
func AdmitCardPDF(d *model.AllocationDetail) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Admit Card %s", d.RollNo), false)
	pdf.AddPage()

	w, h := pdf.GetPageSize()
	pdf.Rect(cardMargin, cardMargin, w-2*cardMargin, h-2*cardMargin, "D")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(0, 25)
	pdf.CellFormat(w, 12, "EXAM ADMIT CARD", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(w, 6, fmt.Sprintf("Generated on: %s", time.Now().UTC().Format("2006-01-02 15:04")),
		"", 1, "C", false, 0, "")

	rows := []struct {
		label string
		value string
	}{
		{"Roll Number:", d.RollNo},
		{"Name:", d.Name},
		{"Course/Program:", d.Course},
		{"Semester:", d.Semester},
		{"Subject Code:", d.SubjectCode},
		{"", ""},
		{"Exam Room:", fmt.Sprintf("%s - %s", d.RoomNo, d.Building)},
		{"Seat Number:", d.SeatLabel},
		{"Row:", fmt.Sprintf("%d", d.RowNum)},
		{"Column:", fmt.Sprintf("%d", d.ColNum)},
	}
	y := 55.0
	for _, r := range rows {
		if r.label != "" {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.Text(labelX, y, r.label)
			pdf.SetFont("Helvetica", "", 12)
			pdf.Text(valueX, y, r.value)
		}
		y += 9
	}

	qrPayload := fmt.Sprintf("Roll: %s | Room: %s | Seat: %s", d.RollNo, d.RoomNo, d.SeatLabel)
	png, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("admit-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("admit-qr", (w-qrSize)/2, y+5, qrSize, qrSize, false, opts, 0, "")

	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetXY(0, y+5+qrSize+4)
	pdf.CellFormat(w, 6, "Scan QR code for verification", "", 1, "C", false, 0, "")

	instrY := h - 55
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(labelX, instrY, "Important Instructions:")
	pdf.SetFont("Helvetica", "", 9)
	for i, line := range []string{
		"1. Bring this admit card to the examination hall",
		"2. Report 30 minutes before exam start time",
		"3. Carry a valid ID proof",
		"4. Mobile phones and electronic devices are not allowed",
	} {
		pdf.Text(labelX, instrY+6+float64(i)*5, line)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render admit card: %w", err)
	}
	return buf.Bytes(), nil
}
