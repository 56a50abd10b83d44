package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fieldserv/internal/model"
	"fieldserv/internal/service"
)

// LocationHandler handles location registry endpoints.
type LocationHandler struct {
	locationService service.LocationService
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(locationService service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// CreateLocationRequest represents a location creation request.
type CreateLocationRequest struct {
	Name    string   `json:"name" validate:"required"`
	Address string   `json:"address"`
	City    string   `json:"city"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// ListLocations godoc
// @Summary List all locations
// @Tags locations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Location
// @Failure 401 {object} errors.ErrorResponse
// @Router /locations [get]
func (h *LocationHandler) ListLocations(c echo.Context) error {
	locations, err := h.locationService.ListLocations(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, locations)
}

// CreateLocation godoc
// @Summary Create a location
// @Tags locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLocationRequest true "Location data"
// @Success 201 {object} model.Location
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /locations [post]
func (h *LocationHandler) CreateLocation(c echo.Context) error {
	var req CreateLocationRequest
	if err := c.Bind(&req); err != nil {
		return validationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err.Error())
	}

	location, err := h.locationService.CreateLocation(c.Request().Context(), &model.Location{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Lat:     req.Lat,
		Lng:     req.Lng,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, location)
}
