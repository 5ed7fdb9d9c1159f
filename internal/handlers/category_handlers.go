package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"stocktrack/internal/services"
)

// CategoryHandlers handles category tag HTTP requests.
type CategoryHandlers struct {
	categoryService services.CategoryService
}

// NewCategoryHandlers creates a new category handlers instance.
func NewCategoryHandlers(categoryService services.CategoryService) *CategoryHandlers {
	return &CategoryHandlers{categoryService: categoryService}
}

// ListCategories handles GET /categories.
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	tags, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tags)
}

// CreateCategoryRequest represents the category creation payload.
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CreateCategory handles POST /categories.
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	tag, err := h.categoryService.Create(c.Request().Context(), req.Name, req.Color)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, tag)
}

// DeleteCategory handles DELETE /categories/:id.
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, detailResponse{Detail: "invalid category id"})
	}

	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Category deleted",
	})
}
