package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"stocktrack/internal/caching"
	"stocktrack/internal/models"
	"stocktrack/internal/repositories"
	"stocktrack/internal/services"
)

// testEnv wires the full in-memory stack behind the handlers.
type testEnv struct {
	echo            *echo.Echo
	stockService    services.StockService
	locationService services.LocationService
	stock           *StockHandlers
	locations       *LocationHandlers
	boms            *BOMHandlers
	categories      *CategoryHandlers
	logs            *StockLogHandlers
	health          *HealthHandlers
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repositories.NewStore()
	stockRepo := repositories.NewStockRepo(store)
	locationRepo := repositories.NewLocationRepo(store)
	bomRepo := repositories.NewBOMRepo(store)
	logRepo := repositories.NewStockLogRepo(store)
	categoryRepo := repositories.NewCategoryRepo(store)
	cache := caching.NewNoopCacheService()

	stockService := services.NewStockService(store, stockRepo, locationRepo, bomRepo, logRepo, cache)
	locationService := services.NewLocationService(store, locationRepo, stockRepo, cache)
	bomService := services.NewBOMService(store, bomRepo, logRepo)
	categoryService := services.NewCategoryService(store, categoryRepo)
	logService := services.NewStockLogService(store, logRepo)

	storage, err := services.NewLocalStorage(t.TempDir(), "/static")
	require.NoError(t, err)

	return &testEnv{
		echo:            echo.New(),
		stockService:    stockService,
		locationService: locationService,
		stock:           NewStockHandlers(stockService, storage),
		locations:       NewLocationHandlers(locationService),
		boms:            NewBOMHandlers(bomService),
		categories:      NewCategoryHandlers(categoryService),
		logs:            NewStockLogHandlers(logService),
		health:          NewHealthHandlers(cache),
	}
}

// do runs one handler against a JSON request and returns the recorder.
func (env *testEnv) do(t *testing.T, handler echo.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	if len(params) > 0 {
		names := make([]string, 0, len(params))
		values := make([]string, 0, len(params))
		for name, value := range params {
			names = append(names, name)
			values = append(values, value)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	require.NoError(t, handler(c))
	return rec
}

func (env *testEnv) seedLocation(t *testing.T, name string) *models.Location {
	t.Helper()
	location, err := env.locationService.Create(context.Background(), &services.LocationCreateRequest{Name: name})
	require.NoError(t, err)
	return location
}

func (env *testEnv) seedStock(t *testing.T, name, barcode string, locationID, qty int) *models.StockResponse {
	t.Helper()
	resp, err := env.stockService.Create(context.Background(), &services.StockCreateRequest{
		Name:      name,
		Barcode:   barcode,
		Locations: []services.LocationQuantity{{LocationID: locationID, Quantity: qty}},
	})
	require.NoError(t, err)
	return resp
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
