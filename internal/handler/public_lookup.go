// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines the public lookup API: students query their
// own seat by roll number and anyone can browse rooms and per-room seating,
// no authentication required.
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seating/internal/model"
	"github.com/iliyamo/exam-seating/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated lookups.
type PublicHandler struct {
	StudentRepo    *repository.StudentRepo
	RoomRepo       *repository.RoomRepo
	AllocationRepo *repository.AllocationRepo
}

// PublicRoom represents a room exposed via the public API.
type PublicRoom struct {
	RoomNo   string `json:"room_no"`
	Building string `json:"building"`
	Rows     int    `json:"rows"`
	Columns  int    `json:"columns"`
	Capacity int    `json:"capacity"`
}

// GetSeatByRoll returns the allocated seat for a single roll number.
// Students use this after an allocation run to find where they sit.
func (h *PublicHandler) GetSeatByRoll(c echo.Context) error {
	ctx := c.Request().Context()
	rollNo := strings.TrimSpace(c.Param("roll_no"))
	if rollNo == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roll_no required"})
	}
	// distinguish "unknown student" from "known but not seated"
	if _, err := h.StudentRepo.GetByRoll(ctx, rollNo); err != nil {
		if err == repository.ErrStudentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	d, err := h.AllocationRepo.GetByRoll(ctx, rollNo)
	if err != nil {
		if err == repository.ErrNotAllocated {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no seat allocated for this roll number"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, d)
}

// GetRooms lists all rooms ordered by room number.
func (h *PublicHandler) GetRooms(c echo.Context) error {
	ctx := c.Request().Context()
	rooms, err := h.RoomRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicRoom, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, PublicRoom{
			RoomNo:   r.RoomNo,
			Building: r.Building,
			Rows:     r.Rows,
			Columns:  r.Columns,
			Capacity: r.Capacity,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetRoomAllocations returns a room together with its current seating,
// keyed "row-col" so an invigilator can render the grid directly.
func (h *PublicHandler) GetRoomAllocations(c echo.Context) error {
	ctx := c.Request().Context()
	roomNo := strings.TrimSpace(c.Param("room_no"))
	if roomNo == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_no required"})
	}
	room, err := h.RoomRepo.GetByRoomNo(ctx, roomNo)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	details, err := h.AllocationRepo.ListByRoom(ctx, roomNo)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	seats := make(map[string]*model.AllocationDetail, len(details))
	for i := range details {
		d := &details[i]
		seats[seatKey(d.RowNum, d.ColNum)] = d
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room": PublicRoom{
			RoomNo:   room.RoomNo,
			Building: room.Building,
			Rows:     room.Rows,
			Columns:  room.Columns,
			Capacity: room.Capacity,
		},
		"occupied": len(details),
		"seats":    seats,
	})
}

func seatKey(row, col int) string {
	return strconv.Itoa(row) + "-" + strconv.Itoa(col)
}
