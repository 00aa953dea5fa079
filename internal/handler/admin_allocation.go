package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seating/internal/allocator"
	"github.com/iliyamo/exam-seating/internal/queue"
	"github.com/iliyamo/exam-seating/internal/repository"
	"github.com/iliyamo/exam-seating/internal/service"
)

type allocateReq struct {
	Method string `json:"method"` // rollwise | random | anti-cheating
}

type allocateResp struct {
	RunID     string `json:"run_id"`
	Method    string `json:"method"`
	Allocated int    `json:"allocated"`
	Message   string `json:"message"`
}

// RunAllocation executes one allocation run with the requested method.
// A roster larger than the total seat capacity is rejected before the
// run starts, so the previous seating survives.  Once the run begins
// it clears the previous seating first; an invalid input (empty
// roster, empty rooms, single subject group for anti-cheating) reports
// 400 with the seating already cleared.
func (h *AdminHandler) RunAllocation(c echo.Context) error {
	var req allocateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	method := strings.ToLower(strings.TrimSpace(req.Method))
	if method == "" {
		method = allocator.MethodRollwise
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	totalStudents, err := h.StudentRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	capacity, err := h.RoomRepo.TotalCapacity(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if totalStudents > capacity {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": fmt.Sprintf("Insufficient capacity: %d students, %d seats", totalStudents, capacity),
		})
	}

	var result *allocator.Result
	switch method {
	case allocator.MethodRollwise:
		result, err = h.Engine.AllocateRollwise(ctx)
	case allocator.MethodRandom:
		result, err = h.Engine.AllocateRandom(ctx)
	case allocator.MethodAntiCheating:
		result, err = h.Engine.AllocateAntiCheating(ctx)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown method; use rollwise, random or anti-cheating"})
	}
	if err != nil {
		switch err {
		case allocator.ErrNoData, allocator.ErrInsufficientGroups:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "allocation failed"})
		}
	}

	h.publishCompleted(result, totalStudents)

	return c.JSON(http.StatusOK, allocateResp{
		RunID:     result.RunID,
		Method:    result.Method,
		Allocated: result.Allocated,
		Message:   result.Message,
	})
}

// publishCompleted emits an allocation.completed event in the background.
// Publishing is best effort; a dead broker must not fail the run.
func (h *AdminHandler) publishCompleted(result *allocator.Result, totalStudents int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var roomNos []string
		if rooms, err := h.RoomRepo.ListAll(ctx); err == nil {
			for _, r := range rooms {
				roomNos = append(roomNos, r.RoomNo)
			}
		}
		ev := queue.AllocationCompletedEvent{
			RunID:         result.RunID,
			Method:        result.Method,
			Allocated:     result.Allocated,
			TotalStudents: totalStudents,
			Rooms:         roomNos,
			CompletedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if err := service.PublishAllocationCompleted(ctx, ev); err != nil {
			log.Printf("publish allocation.completed failed: %v", err)
		}
	}()
}

type swapReq struct {
	RollNo1 string `json:"roll_no_1"`
	RollNo2 string `json:"roll_no_2"`
}

// SwapSeats exchanges the seats of two allocated students.  Both must
// hold a seat in the current allocation; the swap and its audit entry
// commit atomically.
func (h *AdminHandler) SwapSeats(c echo.Context) error {
	var req swapReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	roll1 := strings.TrimSpace(req.RollNo1)
	roll2 := strings.TrimSpace(req.RollNo2)
	if roll1 == "" || roll2 == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roll_no_1 and roll_no_2 required"})
	}
	if roll1 == roll2 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot swap a student with themselves"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.AllocationRepo.SwapSeats(ctx, roll1, roll2, actor(c)); err != nil {
		if errors.Is(err, repository.ErrNotAllocated) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "swap failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Seats of %s and %s swapped.", roll1, roll2),
	})
}
