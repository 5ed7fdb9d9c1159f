package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"stocktrack/internal/models"
	"stocktrack/internal/services"
)

// StockHandlers handles stock-related HTTP requests.
type StockHandlers struct {
	stockService services.StockService
	fileStorage  services.FileStorage
}

// NewStockHandlers creates a new stock handlers instance.
func NewStockHandlers(stockService services.StockService, fileStorage services.FileStorage) *StockHandlers {
	return &StockHandlers{
		stockService: stockService,
		fileStorage:  fileStorage,
	}
}

// ListStock handles GET /stock with optional status, location, category
// and search filters (composed with AND).
func (h *StockHandlers) ListStock(c echo.Context) error {
	var filter models.StockSearchFilter
	if err := c.Bind(&filter); err != nil {
		return bindError(c)
	}

	stocks, err := h.stockService.List(c.Request().Context(), &filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stocks)
}

// CreateStock handles POST /stock.
func (h *StockHandlers) CreateStock(c echo.Context) error {
	var req services.StockCreateRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	stock, err := h.stockService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, stock)
}

// GetStock handles GET /stock/:id.
func (h *StockHandlers) GetStock(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, detailResponse{Detail: "invalid stock id"})
	}

	stock, err := h.stockService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stock)
}

// GetStockByBarcode handles GET /stock/barcode/:code.
func (h *StockHandlers) GetStockByBarcode(c echo.Context) error {
	stock, err := h.stockService.GetByBarcode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stock)
}

// UpdateStock handles PUT /stock/:id.
func (h *StockHandlers) UpdateStock(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, detailResponse{Detail: "invalid stock id"})
	}

	var req services.StockUpdateRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	stock, err := h.stockService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stock)
}

// DeleteStock handles DELETE /stock/:id.
func (h *StockHandlers) DeleteStock(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, detailResponse{Detail: "invalid stock id"})
	}

	if err := h.stockService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Stock item deleted successfully",
	})
}

// ScrapStockRequest represents the scrap request payload.
type ScrapStockRequest struct {
	StockID    int    `json:"stock_id"`
	LocationID int    `json:"location_id"`
	Quantity   int    `json:"quantity"`
	Reason     string `json:"reason"`
}

// ScrapStock handles POST /stock/scrap.
func (h *StockHandlers) ScrapStock(c echo.Context) error {
	var req ScrapStockRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	stock, err := h.stockService.Scrap(c.Request().Context(), req.StockID, req.LocationID, req.Quantity, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stock)
}

// ScanRequest represents a barcode-scan quantity adjustment.
type ScanRequest struct {
	Barcode    string `json:"barcode"`
	LocationID int    `json:"location_id"`
	Amount     int    `json:"amount"`
	Action     string `json:"action"`
}

// Scan handles POST /scan.
func (h *StockHandlers) Scan(c echo.Context) error {
	var req ScanRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	stock, err := h.stockService.Scan(c.Request().Context(), req.Barcode, req.LocationID, req.Amount, req.Action)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stock)
}

// AdjustStockRequest represents the quick add/remove payload keyed by
// part id.
type AdjustStockRequest struct {
	PartID string `json:"partId"`
	Amount int    `json:"amount"`
	Mode   string `json:"mode"`
}

// AdjustStock handles POST /stock/adjust.
func (h *StockHandlers) AdjustStock(c echo.Context) error {
	var req AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	stock, err := h.stockService.Adjust(c.Request().Context(), req.PartID, req.Amount, req.Mode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stock)
}

// TransferStockRequest represents a transfer between two locations.
type TransferStockRequest struct {
	StockID      int    `json:"stock_id"`
	LocationID   int    `json:"location_id"`
	ToLocationID int    `json:"to_location_id"`
	Quantity     int    `json:"quantity"`
	Reason       string `json:"reason"`
}

// TransferStock handles POST /stock/transfer.
func (h *StockHandlers) TransferStock(c echo.Context) error {
	var req TransferStockRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	stock, err := h.stockService.Transfer(c.Request().Context(), req.StockID, req.LocationID, req.ToLocationID, req.Quantity, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stock)
}

// AssembleRequest represents an assembly order for a BOM product.
type AssembleRequest struct {
	ProductBarcode string `json:"product_barcode"`
	Quantity       int    `json:"quantity"`
}

// AssembleStock handles POST /stock/assemble.
func (h *StockHandlers) AssembleStock(c echo.Context) error {
	var req AssembleRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	stock, err := h.stockService.Assemble(c.Request().Context(), req.ProductBarcode, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stock)
}

// LowStock handles GET /stock/low?threshold=.
func (h *StockHandlers) LowStock(c echo.Context) error {
	threshold := 0
	if t := c.QueryParam("threshold"); t != "" {
		parsed, err := strconv.Atoi(t)
		if err != nil {
			return c.JSON(http.StatusBadRequest, detailResponse{Detail: "invalid threshold"})
		}
		threshold = parsed
	}

	stocks, err := h.stockService.LowStock(c.Request().Context(), threshold)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stocks)
}

// UploadImage handles POST /stock/:id/image (multipart field "file").
func (h *StockHandlers) UploadImage(c echo.Context) error {
	return h.upload(c, "images")
}

// UploadFile handles POST /stock/:id/file (multipart field "file").
func (h *StockHandlers) UploadFile(c echo.Context) error {
	return h.upload(c, "files")
}

func (h *StockHandlers) upload(c echo.Context, kind string) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, detailResponse{Detail: "invalid stock id"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, detailResponse{Detail: "file is required"})
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, detailResponse{Detail: "failed to read uploaded file"})
	}
	defer src.Close()

	url, err := h.fileStorage.Save(c.Request().Context(), kind, fileHeader.Filename, src, fileHeader.Size)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, detailResponse{Detail: "failed to store uploaded file"})
	}

	var stock *models.StockResponse
	if kind == "images" {
		stock, err = h.stockService.AttachImage(c.Request().Context(), id, url)
	} else {
		stock, err = h.stockService.AttachFile(c.Request().Context(), id, url)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stock)
}
