package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seating/internal/ingest"
)

// UploadStudents replaces the whole student roster from an uploaded CSV
// or XLSX file.  The previous roster and any seating built on it are
// discarded in the same transaction; a bad file leaves everything as it
// was.  The multipart field name is "file".
func (h *AdminHandler) UploadStudents(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file upload required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read uploaded file"})
	}
	defer src.Close()

	students, err := ingest.ParseStudents(src, fh.Filename)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	if err := h.StudentRepo.ReplaceAll(ctx, students); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save students failed"})
	}
	_ = h.ActivityRepo.Log(ctx, "upload",
		fmt.Sprintf("Student roster replaced: %d students uploaded by %s", len(students), actor(c)))

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  fmt.Sprintf("Successfully uploaded %d students.", len(students)),
		"students": len(students),
	})
}

// UploadRooms replaces the room list from an uploaded CSV or XLSX file.
// Same replace semantics as UploadStudents.
func (h *AdminHandler) UploadRooms(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file upload required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read uploaded file"})
	}
	defer src.Close()

	rooms, err := ingest.ParseRooms(src, fh.Filename)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	if err := h.RoomRepo.ReplaceAll(ctx, rooms); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save rooms failed"})
	}
	_ = h.ActivityRepo.Log(ctx, "upload",
		fmt.Sprintf("Room list replaced: %d rooms uploaded by %s", len(rooms), actor(c)))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": fmt.Sprintf("Successfully uploaded %d rooms.", len(rooms)),
		"rooms":   len(rooms),
	})
}
