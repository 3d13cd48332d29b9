// Package http provides the HTTP handler layer for the schedule search API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/airline-ops/schedule-search-service/internal/adapter/http/response"
	"github.com/airline-ops/schedule-search-service/internal/domain"
	"github.com/airline-ops/schedule-search-service/internal/usecase"
)

// ScheduleHandler handles HTTP requests for schedule-related endpoints.
type ScheduleHandler struct {
	search       usecase.ScheduleSearchUseCase
	availability usecase.AvailabilityUseCase
	admin        usecase.ScheduleAdminUseCase
}

// NewScheduleHandler creates a ScheduleHandler with the given use cases.
func NewScheduleHandler(search usecase.ScheduleSearchUseCase, availability usecase.AvailabilityUseCase, admin usecase.ScheduleAdminUseCase) *ScheduleHandler {
	return &ScheduleHandler{
		search:       search,
		availability: availability,
		admin:        admin,
	}
}

// SearchSchedules handles GET /api/v1/schedules/search
func (h *ScheduleHandler) SearchSchedules(c echo.Context) error {
	req, err := BindSearchRequest(c)
	if err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.search.Search(c.Request().Context(), req.ToDomainQuery())
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, ToSearchResponse(result))
}

// CheckAvailability handles GET /api/v1/schedules/:id/availability
func (h *ScheduleHandler) CheckAvailability(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "id must be an integer")
	}

	countParam := c.QueryParam("passengerCount")
	count, err := strconv.Atoi(countParam)
	if err != nil {
		return response.BadRequest(c, "passengerCount must be an integer")
	}

	available, err := h.availability.Check(c.Request().Context(), id, count)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, &AvailabilityResponse{Available: available})
}

// CreateSchedule handles POST /api/v1/schedules
func (h *ScheduleHandler) CreateSchedule(c echo.Context) error {
	var req ScheduleUpsertRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	leg, err := req.ToDomainLeg(0)
	if err != nil {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	created, err := h.admin.Create(c.Request().Context(), leg)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Created(c, ToScheduleDTO(created))
}

// GetSchedule handles GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetSchedule(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "id must be an integer")
	}

	leg, err := h.admin.Get(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, ToScheduleDTO(leg))
}

// ListSchedules handles GET /api/v1/schedules
func (h *ScheduleHandler) ListSchedules(c echo.Context) error {
	legs, err := h.admin.List(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}

	dtos := make([]ScheduleDTO, 0, len(legs))
	for _, leg := range legs {
		dtos = append(dtos, ToScheduleDTO(leg))
	}
	return response.OK(c, dtos)
}

// UpdateSchedule handles PUT /api/v1/schedules/:id
func (h *ScheduleHandler) UpdateSchedule(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "id must be an integer")
	}

	var req ScheduleUpsertRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	leg, err := req.ToDomainLeg(id)
	if err != nil {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	updated, err := h.admin.Update(c.Request().Context(), leg)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, ToScheduleDTO(updated))
}

// ToggleScheduleStatus handles PUT /api/v1/schedules/:id/status
func (h *ScheduleHandler) ToggleScheduleStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "id must be an integer")
	}

	leg, err := h.admin.ToggleStatus(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, ToScheduleDTO(leg))
}

// DeleteSchedule handles DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "id must be an integer")
	}

	if err := h.admin.Delete(c.Request().Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return response.NoContent(c)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *ScheduleHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *ScheduleHandler) handleError(c echo.Context, err error) error {
	// Contradictory search parameters, e.g. identical airports
	if errors.Is(err, domain.ErrConflict) {
		return response.Conflict(c, err.Error())
	}

	// Unknown schedule or constituent leg
	if errors.Is(err, domain.ErrNotFound) {
		return response.NotFoundWithMessage(c, err.Error())
	}

	// Invalid request (domain validation)
	if errors.Is(err, domain.ErrInvalidRequest) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	// Check for context deadline exceeded (timeout)
	if errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}

	// Check for context cancelled
	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	// Storage failures and anything unexpected
	return response.InternalServerError(c)
}

// Health handles GET /health
// Simple health check endpoint.
func (h *ScheduleHandler) Health(c echo.Context) error {
	return response.Health(c)
}
