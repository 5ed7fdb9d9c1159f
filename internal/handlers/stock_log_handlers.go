package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stocktrack/internal/services"
)

// StockLogHandlers handles audit log HTTP requests.
type StockLogHandlers struct {
	logService services.StockLogService
}

// NewStockLogHandlers creates a new stock log handlers instance.
func NewStockLogHandlers(logService services.StockLogService) *StockLogHandlers {
	return &StockLogHandlers{logService: logService}
}

// ListStockLogs handles GET /stock_logs, returning every entry in
// insertion order.
func (h *StockLogHandlers) ListStockLogs(c echo.Context) error {
	logs, err := h.logService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
