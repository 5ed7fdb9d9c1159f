package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"stocktrack/internal/apperrors"
)

// detailResponse is the error body shape for every failed request.
type detailResponse struct {
	Detail string `json:"detail"`
}

// respondError maps a service error to its HTTP status. Validation and
// insufficient-stock failures are 400, missing entities 404, duplicate
// creations 409. Anything else is an unexpected server error.
func respondError(c echo.Context, err error) error {
	var (
		validationErr   *apperrors.ValidationError
		notFoundErr     *apperrors.NotFoundError
		conflictErr     *apperrors.ConflictError
		insufficientErr *apperrors.InsufficientStockError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr), errors.As(err, &insufficientErr):
		status = http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &conflictErr):
		status = http.StatusConflict
	}

	return c.JSON(status, detailResponse{Detail: err.Error()})
}

// bindError is the response for payloads echo cannot bind.
func bindError(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, detailResponse{Detail: "invalid request format"})
}
