// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seating/internal/handler"
	"github.com/iliyamo/exam-seating/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// rotates the refresh token
	g.POST("/refresh", a.Refresh)
	// issues a new access token without rotating the refresh token
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "INVIGILATOR"))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated lookup endpoints:
// seat-by-roll lookup for students and room browsing for invigilators.
// The optional middleware (response cache, rate limiter) applies to all
// of them; these are the routes the whole student body hits right after
// an allocation is published.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	g.GET("/students/:roll_no/seat", p.GetSeatByRoll)
	g.GET("/rooms", p.GetRooms)
	g.GET("/rooms/:room_no/allocations", p.GetRoomAllocations)
}

// RegisterAdmin registers admin-only endpoints under /v1/admin.  All
// routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	g.POST("/students", h.UploadStudents)
	g.POST("/rooms", h.UploadRooms)
	g.POST("/allocations", h.RunAllocation)
	g.POST("/seats/swap", h.SwapSeats)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/stats", h.Stats)
	g.GET("/export/seating-plan", h.ExportSeatingPlan)
	g.GET("/export/rooms/:room_no", h.ExportRoom)
	g.GET("/admit-cards/:roll_no", h.AdmitCard)
	g.POST("/admit-cards", h.AdmitCards)
}
