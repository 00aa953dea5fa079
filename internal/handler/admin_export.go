package handler

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seating/internal/export"
	"github.com/iliyamo/exam-seating/internal/model"
	"github.com/iliyamo/exam-seating/internal/repository"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportSeatingPlan streams the full seating plan as an XLSX workbook.
func (h *AdminHandler) ExportSeatingPlan(c echo.Context) error {
	ctx := c.Request().Context()
	details, err := h.AllocationRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(details) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no allocations to export"})
	}
	wb, err := export.SeatingPlanWorkbook(details)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build workbook failed"})
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "write workbook failed"})
	}
	_ = h.ActivityRepo.Log(ctx, "export",
		fmt.Sprintf("Seating plan exported (%d allocations) by %s", len(details), actor(c)))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="seating_plan.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

// ExportRoom streams one room's seating as an XLSX workbook.
func (h *AdminHandler) ExportRoom(c echo.Context) error {
	ctx := c.Request().Context()
	roomNo := strings.TrimSpace(c.Param("room_no"))
	if roomNo == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_no required"})
	}
	if _, err := h.RoomRepo.GetByRoomNo(ctx, roomNo); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	details, err := h.AllocationRepo.ListByRoom(ctx, roomNo)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	wb, err := export.RoomListWorkbook(roomNo, details)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build workbook failed"})
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "write workbook failed"})
	}
	_ = h.ActivityRepo.Log(ctx, "export",
		fmt.Sprintf("Room %s seating exported (%d allocations) by %s", roomNo, len(details), actor(c)))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="room_%s.xlsx"`, roomNo))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

// AdmitCard streams the admit card PDF for one allocated student.
func (h *AdminHandler) AdmitCard(c echo.Context) error {
	ctx := c.Request().Context()
	rollNo := strings.TrimSpace(c.Param("roll_no"))
	if rollNo == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roll_no required"})
	}
	d, err := h.AllocationRepo.GetByRoll(ctx, rollNo)
	if err != nil {
		if err == repository.ErrNotAllocated {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no seat allocated for this roll number"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	pdf, err := export.AdmitCardPDF(d)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build admit card failed"})
	}
	_ = h.ActivityRepo.Log(ctx, "export",
		fmt.Sprintf("Admit card generated for %s by %s", rollNo, actor(c)))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="admit_card_%s.pdf"`, rollNo))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

type admitCardsReq struct {
	RollNos []string `json:"roll_nos"` // empty means every allocated student
}

// AdmitCards builds admit cards in bulk and streams them as a ZIP of
// PDFs, one file per student.  An empty roll_nos list means the whole
// current allocation.
func (h *AdminHandler) AdmitCards(c echo.Context) error {
	var req admitCardsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx := c.Request().Context()

	var details []model.AllocationDetail
	if len(req.RollNos) == 0 {
		all, err := h.AllocationRepo.ListAll(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		details = all
	} else {
		for _, roll := range req.RollNos {
			roll = strings.TrimSpace(roll)
			if roll == "" {
				continue
			}
			d, err := h.AllocationRepo.GetByRoll(ctx, roll)
			if err != nil {
				if err == repository.ErrNotAllocated {
					return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("no seat allocated for %s", roll)})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
			}
			details = append(details, *d)
		}
	}
	if len(details) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no allocations to export"})
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i := range details {
		d := &details[i]
		pdf, err := export.AdmitCardPDF(d)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build admit card failed"})
		}
		f, err := zw.Create(fmt.Sprintf("admit_card_%s.pdf", d.RollNo))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build archive failed"})
		}
		if _, err := f.Write(pdf); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build archive failed"})
		}
	}
	if err := zw.Close(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build archive failed"})
	}

	_ = h.ActivityRepo.Log(ctx, "export",
		fmt.Sprintf("Admit cards generated in bulk (%d students) by %s", len(details), actor(c)))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="admit_cards.zip"`)
	return c.Blob(http.StatusOK, "application/zip", buf.Bytes())
}
