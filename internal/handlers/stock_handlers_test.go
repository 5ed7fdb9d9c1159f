package handlers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrack/internal/models"
)

func TestCreateStock(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t, "Warehouse A")

	body := fmt.Sprintf(`{"name":"Widget","barcode":"W1","locations":[{"location_id":%d,"quantity":10}]}`, loc.ID)
	rec := env.do(t, env.stock.CreateStock, http.MethodPost, "/stock", body, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.StockResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, 1, resp.ID)
	assert.Equal(t, 10, resp.TotalQuantity)
	assert.Equal(t, models.StatusInStock, resp.Status)
}

func TestCreateStock_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, env.stock.CreateStock, http.MethodPost, "/stock", `{"name":`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request format", decodeDetail(t, rec))
}

func TestCreateStock_ValidationError(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, env.stock.CreateStock, http.MethodPost, "/stock", `{"name":"Widget","barcode":"W1","locations":[]}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decodeDetail(t, rec))
}

func TestGetStock_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, env.stock.GetStock, http.MethodGet, "/stock/42", "", map[string]string{"id": "42"})

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "stock item 42 not found", decodeDetail(t, rec))
}

func TestGetStock_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, env.stock.GetStock, http.MethodGet, "/stock/abc", "", map[string]string{"id": "abc"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStockByBarcode(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t, "Warehouse A")
	env.seedStock(t, "Widget", "W1", loc.ID, 5)

	rec := env.do(t, env.stock.GetStockByBarcode, http.MethodGet, "/stock/barcode/W1", "", map[string]string{"code": "W1"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.StockResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "W1", resp.Barcode)
	assert.Equal(t, models.StatusLowStock, resp.Status)
}

func TestScan_InsufficientComponents(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t, "Warehouse A")
	env.seedStock(t, "Widget", "W1", loc.ID, 0)
	env.seedStock(t, "Bolt", "C1", loc.ID, 1)

	bomBody := `{"product_barcode":"W1","components":{"C1":2}}`
	rec := env.do(t, env.boms.CreateBOM, http.MethodPost, "/boms", bomBody, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	scanBody := fmt.Sprintf(`{"barcode":"W1","location_id":%d,"amount":3,"action":"add"}`, loc.ID)
	rec = env.do(t, env.stock.Scan, http.MethodPost, "/scan", scanBody, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "insufficient stock for component C1: need 6, have 1", decodeDetail(t, rec))
}

func TestScrapStock(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t, "Warehouse A")
	stock := env.seedStock(t, "Widget", "W1", loc.ID, 10)

	body := fmt.Sprintf(`{"stock_id":%d,"location_id":%d,"quantity":4,"reason":"damaged"}`, stock.ID, loc.ID)
	rec := env.do(t, env.stock.ScrapStock, http.MethodPost, "/stock/scrap", body, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.StockResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, 6, resp.TotalQuantity)
	assert.Equal(t, 4, resp.ScrapCount)
}

func TestTransferStock(t *testing.T) {
	env := newTestEnv(t)
	locA := env.seedLocation(t, "Warehouse A")
	locB := env.seedLocation(t, "Warehouse B")
	stock := env.seedStock(t, "Widget", "W1", locA.ID, 10)

	body := fmt.Sprintf(`{"stock_id":%d,"location_id":%d,"to_location_id":%d,"quantity":4}`, stock.ID, locA.ID, locB.ID)
	rec := env.do(t, env.stock.TransferStock, http.MethodPost, "/stock/transfer", body, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.StockResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, 10, resp.TotalQuantity)
	require.Len(t, resp.Locations, 2)
}

func TestLowStock_InvalidThreshold(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, env.stock.LowStock, http.MethodGet, "/stock/low?threshold=abc", "", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteStock(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t, "Warehouse A")
	stock := env.seedStock(t, "Widget", "W1", loc.ID, 10)

	rec := env.do(t, env.stock.DeleteStock, http.MethodDelete, "/stock/1", "", map[string]string{"id": fmt.Sprint(stock.ID)})
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := env.stockService.GetByID(context.Background(), stock.ID)
	require.Error(t, err)
}

func TestUploadImage(t *testing.T) {
	env := newTestEnv(t)
	loc := env.seedLocation(t, "Warehouse A")
	stock := env.seedStock(t, "Widget", "W1", loc.ID, 10)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("pixels"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/stock/1/image", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(stock.ID))
	require.NoError(t, env.stock.UploadImage(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.StockResponse
	decodeJSON(t, rec, &resp)
	require.NotNil(t, resp.ImageURL)
	assert.Contains(t, *resp.ImageURL, "/static/images/")
	assert.Contains(t, *resp.ImageURL, "_photo.png")
}
