package models

import "github.com/shopspring/decimal"

// Stock status values derived from an item's total quantity.
const (
	StatusOutOfStock = "Out of Stock"
	StatusLowStock   = "Low Stock"
	StatusInStock    = "In Stock"
)

// LowStockThreshold is the quantity below which an item counts as low stock.
const LowStockThreshold = 10

// Stock represents a tracked inventory item. Quantities live in the
// per-location ledger rows (StockLocation), not on the item itself.
type Stock struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	PartID          string          `json:"partId"`
	Category        string          `json:"category"`
	Barcode         string          `json:"barcode"`
	Status          string          `json:"status"`
	ScrapCount      int             `json:"scrap_count"`
	LotNumber       *string         `json:"lot_number"`
	BinNumbers      *string         `json:"bin_numbers"`
	Supplier        *string         `json:"supplier"`
	ProductionStage *string         `json:"production_stage"`
	Notes           *string         `json:"notes"`
	ImageURL        *string         `json:"image_url"`
	FileURL         *string         `json:"file_url"`
	Cost            decimal.Decimal `json:"cost"`
}

// StockLocation is one ledger row: how much of a stock item sits at a
// location. Quantity never goes negative; operations that would drive it
// below zero are rejected.
type StockLocation struct {
	StockID    int `json:"stock_id"`
	LocationID int `json:"location_id"`
	Quantity   int `json:"quantity"`
}

// StockLocationView is a ledger row enriched with the location name for
// API responses.
type StockLocationView struct {
	LocationID   int    `json:"location_id"`
	Quantity     int    `json:"quantity"`
	LocationName string `json:"location_name,omitempty"`
}

// StockResponse is a stock item together with its ledger rows and total.
type StockResponse struct {
	Stock
	TotalQuantity int                 `json:"total_quantity"`
	Locations     []StockLocationView `json:"locations"`
}

// StockSearchFilter holds filter criteria for stock listing. Filters
// compose with logical AND.
type StockSearchFilter struct {
	Status   string `query:"status"`
	Location string `query:"location"` // location id or case-insensitive name
	Category string `query:"category"` // comma-separated set membership
	Search   string `query:"search"`   // substring over name, partId, barcode
}

// StatusForQuantity derives the stock status from a total quantity.
func StatusForQuantity(total int) string {
	switch {
	case total <= 0:
		return StatusOutOfStock
	case total < LowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
