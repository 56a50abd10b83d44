package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fieldserv/internal/auth"
	apperrors "fieldserv/internal/errors"
	"fieldserv/internal/repository"
	"fieldserv/internal/service"
)

// RecordHandler handles service-visit record endpoints.
type RecordHandler struct {
	recordService service.RecordService
}

// NewRecordHandler creates a new record handler.
func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// CreateRecordRequest represents a record creation request. There is no
// created_by field: the creator is always the authenticated user.
type CreateRecordRequest struct {
	LocationID  uint       `json:"location_id" validate:"required"`
	ServiceType string     `json:"service_type" validate:"required"`
	Notes       string     `json:"notes"`
	StartedAt   *time.Time `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
}

// CreateRecord godoc
// @Summary Create a service-visit record
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecordRequest true "Record data"
// @Success 201 {object} model.Record
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /records [post]
func (h *RecordHandler) CreateRecord(c echo.Context) error {
	actor := auth.CurrentUser(c)
	if actor == nil {
		return domainError(apperrors.ErrUnauthenticated)
	}

	var req CreateRecordRequest
	if err := c.Bind(&req); err != nil {
		return validationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err.Error())
	}

	record, err := h.recordService.CreateRecord(c.Request().Context(), actor, service.RecordInput{
		LocationID:  req.LocationID,
		ServiceType: req.ServiceType,
		Notes:       req.Notes,
		StartedAt:   req.StartedAt,
		EndedAt:     req.EndedAt,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, record)
}

// ListRecords godoc
// @Summary List records, most recent first
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param location_id query int false "Filter by location"
// @Param created_by query int false "Filter by creating user"
// @Param from query string false "Created at or after (RFC 3339)"
// @Param to query string false "Created at or before (RFC 3339)"
// @Success 200 {array} model.Record
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /records [get]
func (h *RecordHandler) ListRecords(c echo.Context) error {
	filter, err := parseRecordFilter(c)
	if err != nil {
		return validationError(err.Error())
	}

	records, err := h.recordService.ListRecords(c.Request().Context(), filter)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, records)
}

// parseRecordFilter reads the supported query parameters. Anything else in
// the query string is ignored by construction; only malformed values of the
// known keys are an error.
func parseRecordFilter(c echo.Context) (repository.RecordFilter, error) {
	var filter repository.RecordFilter

	if v := c.QueryParam("location_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, fmt.Errorf("location_id must be an integer")
		}
		u := uint(id)
		filter.LocationID = &u
	}
	if v := c.QueryParam("created_by"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, fmt.Errorf("created_by must be an integer")
		}
		u := uint(id)
		filter.CreatedBy = &u
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, fmt.Errorf("from must be an RFC 3339 timestamp")
		}
		filter.From = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, fmt.Errorf("to must be an RFC 3339 timestamp")
		}
		filter.To = &t
	}

	return filter, nil
}
