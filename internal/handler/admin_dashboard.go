package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type dashboardResp struct {
	Students      int              `json:"students"`
	Rooms         int              `json:"rooms"`
	Allocated     int              `json:"allocated"`
	TotalCapacity int              `json:"total_capacity"`
	Recent        []activityEntry  `json:"recent_activity"`
}

type activityEntry struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// Dashboard returns the headline counts plus the most recent activity
// entries, everything the admin landing page needs in one call.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	students, err := h.StudentRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rooms, err := h.RoomRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	allocated, err := h.AllocationRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	capacity, err := h.RoomRepo.TotalCapacity(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	activities, err := h.ActivityRepo.Recent(ctx, 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	recent := make([]activityEntry, 0, len(activities))
	for _, a := range activities {
		recent = append(recent, activityEntry{
			Type:        a.Type,
			Description: a.Description,
			CreatedAt:   a.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return c.JSON(http.StatusOK, dashboardResp{
		Students:      students,
		Rooms:         rooms,
		Allocated:     allocated,
		TotalCapacity: capacity,
		Recent:        recent,
	})
}

type roomStat struct {
	RoomNo      string  `json:"room_no"`
	Building    string  `json:"building"`
	Capacity    int     `json:"capacity"`
	Occupied    int     `json:"occupied"`
	Utilization float64 `json:"utilization_pct"`
}

// Stats reports per-room occupancy for the current allocation.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	rooms, err := h.RoomRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]roomStat, 0, len(rooms))
	totalOccupied := 0
	totalCapacity := 0
	for _, r := range rooms {
		occupied, err := h.AllocationRepo.CountByRoom(ctx, r.RoomNo)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		pct := 0.0
		if r.Capacity > 0 {
			pct = float64(occupied) / float64(r.Capacity) * 100
		}
		out = append(out, roomStat{
			RoomNo:      r.RoomNo,
			Building:    r.Building,
			Capacity:    r.Capacity,
			Occupied:    occupied,
			Utilization: pct,
		})
		totalOccupied += occupied
		totalCapacity += r.Capacity
	}

	overall := 0.0
	if totalCapacity > 0 {
		overall = float64(totalOccupied) / float64(totalCapacity) * 100
	}
	return c.JSON(http.StatusOK, echo.Map{
		"rooms":               out,
		"total_occupied":      totalOccupied,
		"total_capacity":      totalCapacity,
		"overall_utilization": overall,
	})
}
