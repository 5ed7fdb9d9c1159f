package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stocktrack/internal/models"
	"stocktrack/internal/services"
)

// BOMHandlers handles bill-of-materials HTTP requests.
type BOMHandlers struct {
	bomService services.BOMService
}

// NewBOMHandlers creates a new BOM handlers instance.
func NewBOMHandlers(bomService services.BOMService) *BOMHandlers {
	return &BOMHandlers{bomService: bomService}
}

// ListBOMs handles GET /boms.
func (h *BOMHandlers) ListBOMs(c echo.Context) error {
	boms, err := h.bomService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, boms)
}

// CreateBOM handles POST /boms.
func (h *BOMHandlers) CreateBOM(c echo.Context) error {
	var bom models.BOM
	if err := c.Bind(&bom); err != nil {
		return bindError(c)
	}

	created, err := h.bomService.Create(c.Request().Context(), &bom)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateBOM handles PUT /boms/:barcode, replacing the whole recipe.
func (h *BOMHandlers) UpdateBOM(c echo.Context) error {
	var bom models.BOM
	if err := c.Bind(&bom); err != nil {
		return bindError(c)
	}

	updated, err := h.bomService.Update(c.Request().Context(), c.Param("barcode"), &bom)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteBOM handles DELETE /boms/:barcode.
func (h *BOMHandlers) DeleteBOM(c echo.Context) error {
	if err := h.bomService.Delete(c.Request().Context(), c.Param("barcode")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "BOM deleted successfully",
	})
}
