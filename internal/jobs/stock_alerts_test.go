package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrack/internal/caching"
	"stocktrack/internal/models"
	"stocktrack/internal/repositories"
	"stocktrack/internal/services"
)

func newAlertFixture(t *testing.T, threshold int) (*StockAlertService, services.StockService) {
	t.Helper()
	store := repositories.NewStore()
	stockRepo := repositories.NewStockRepo(store)
	locationRepo := repositories.NewLocationRepo(store)
	stockService := services.NewStockService(
		store,
		stockRepo,
		locationRepo,
		repositories.NewBOMRepo(store),
		repositories.NewStockLogRepo(store),
		caching.NewNoopCacheService(),
	)
	locationRepo.Insert(&models.Location{ID: 1, Name: "Warehouse A"})
	return NewStockAlertService(stockService, threshold), stockService
}

func createItem(t *testing.T, stockService services.StockService, name, barcode string, qty int) {
	t.Helper()
	_, err := stockService.Create(context.Background(), &services.StockCreateRequest{
		Name:      name,
		Barcode:   barcode,
		Locations: []services.LocationQuantity{{LocationID: 1, Quantity: qty}},
	})
	require.NoError(t, err)
}

func TestCheckLowStock(t *testing.T) {
	alertService, stockService := newAlertFixture(t, 0)
	createItem(t, stockService, "Widget", "W1", 50)
	createItem(t, stockService, "Bolt", "C1", 3)
	createItem(t, stockService, "Panel", "C2", 0)

	alerts, err := alertService.CheckLowStock(context.Background())
	require.NoError(t, err)

	require.Len(t, alerts, 2)
	assert.Equal(t, "C1", alerts[0].Barcode)
	assert.Equal(t, 3, alerts[0].TotalQuantity)
	assert.Equal(t, models.StatusLowStock, alerts[0].Status)
	assert.Equal(t, "C2", alerts[1].Barcode)
	assert.Equal(t, models.StatusOutOfStock, alerts[1].Status)
}

func TestCheckLowStock_CustomThreshold(t *testing.T) {
	alertService, stockService := newAlertFixture(t, 100)
	createItem(t, stockService, "Widget", "W1", 50)

	alerts, err := alertService.CheckLowStock(context.Background())
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, "W1", alerts[0].Barcode)
}

func TestScheduledLowStockCheck(t *testing.T) {
	alertService, stockService := newAlertFixture(t, 0)
	createItem(t, stockService, "Bolt", "C1", 3)

	require.NoError(t, alertService.ScheduledLowStockCheck(context.Background()))
}
