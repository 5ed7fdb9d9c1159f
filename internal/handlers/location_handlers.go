package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"stocktrack/internal/services"
)

// LocationHandlers handles location-related HTTP requests.
type LocationHandlers struct {
	locationService services.LocationService
}

// NewLocationHandlers creates a new location handlers instance.
func NewLocationHandlers(locationService services.LocationService) *LocationHandlers {
	return &LocationHandlers{locationService: locationService}
}

// ListLocations handles GET /locations with optional search and type
// filters.
func (h *LocationHandlers) ListLocations(c echo.Context) error {
	var filter services.LocationSearchFilter
	if err := c.Bind(&filter); err != nil {
		return bindError(c)
	}

	locations, err := h.locationService.List(c.Request().Context(), &filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, locations)
}

// CreateLocation handles POST /locations.
func (h *LocationHandlers) CreateLocation(c echo.Context) error {
	var req services.LocationCreateRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	location, err := h.locationService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, location)
}

// UpdateLocation handles PUT /locations/:id.
func (h *LocationHandlers) UpdateLocation(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, detailResponse{Detail: "invalid location id"})
	}

	var req services.LocationCreateRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	location, err := h.locationService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, location)
}

// DeleteLocation handles DELETE /locations/:id. Deletion is refused
// while any stock still references the location.
func (h *LocationHandlers) DeleteLocation(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, detailResponse{Detail: "invalid location id"})
	}

	if err := h.locationService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Location deleted successfully",
	})
}
