// Package http provides the HTTP handler layer for the schedule search API.
package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all schedule API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *ScheduleHandler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	// API v1 group
	api := e.Group("/api/v1")

	registerScheduleRoutes(api, h)
}

// RegisterRoutesWithMiddleware registers routes with custom middleware.
// This allows for endpoint-specific middleware configuration.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *ScheduleHandler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix, no middleware)
	e.GET("/health", h.Health)

	// API v1 group with middleware
	api := e.Group("/api/v1", middleware...)

	registerScheduleRoutes(api, h)
}

func registerScheduleRoutes(api *echo.Group, h *ScheduleHandler) {
	schedules := api.Group("/schedules")

	schedules.GET("/search", h.SearchSchedules)
	schedules.GET("/:id/availability", h.CheckAvailability)

	schedules.POST("", h.CreateSchedule)
	schedules.GET("", h.ListSchedules)
	schedules.GET("/:id", h.GetSchedule)
	schedules.PUT("/:id", h.UpdateSchedule)
	schedules.PUT("/:id/status", h.ToggleScheduleStatus)
	schedules.DELETE("/:id", h.DeleteSchedule)
}
