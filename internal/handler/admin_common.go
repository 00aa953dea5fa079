package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seating/internal/allocator"
	"github.com/iliyamo/exam-seating/internal/repository"
)

// AdminHandler bundles everything the admin endpoints touch: the roster
// and room repositories, the allocation engine and the activity log.
type AdminHandler struct {
	StudentRepo    *repository.StudentRepo
	RoomRepo       *repository.RoomRepo
	AllocationRepo *repository.AllocationRepo
	ActivityRepo   *repository.ActivityRepo
	Engine         *allocator.Engine
}

// NewAdminHandler constructs an AdminHandler and panics if any dependency is nil.
func NewAdminHandler(students *repository.StudentRepo, rooms *repository.RoomRepo, allocations *repository.AllocationRepo, activity *repository.ActivityRepo, engine *allocator.Engine) *AdminHandler {
	if students == nil || rooms == nil || allocations == nil || activity == nil || engine == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{
		StudentRepo:    students,
		RoomRepo:       rooms,
		AllocationRepo: allocations,
		ActivityRepo:   activity,
		Engine:         engine,
	}
}

// actor returns a string identifying the authenticated user for the
// activity log, falling back to "system" when the context carries none.
func actor(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		return fmt.Sprintf("user:%v", v)
	}
	return "system"
}
