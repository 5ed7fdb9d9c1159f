package repositories

import (
	"sort"
	"strings"

	"stocktrack/internal/models"
)

// StockRepository owns the stock registry and its location-quantity
// ledger. All methods require the store lock.
type StockRepository interface {
	NextID() int
	Insert(stock *models.Stock)
	GetByID(id int) *models.Stock
	GetByBarcode(barcode string) *models.Stock
	GetByPartID(partID string) *models.Stock
	List() []*models.Stock
	Delete(id int)

	InsertRow(row *models.StockLocation)
	Row(stockID, locationID int) *models.StockLocation
	RowsFor(stockID int) []*models.StockLocation
	DeleteRowsFor(stockID int)
	HasRowsForLocation(locationID int) bool
	TotalQuantity(stockID int) int
}

type stockRepo struct {
	store *Store
}

func NewStockRepo(store *Store) StockRepository {
	return &stockRepo{store: store}
}

func (r *stockRepo) NextID() int {
	max := 0
	for _, s := range r.store.stocks {
		if s.ID > max {
			max = s.ID
		}
	}
	return max + 1
}

func (r *stockRepo) Insert(stock *models.Stock) {
	r.store.stocks = append(r.store.stocks, stock)
}

func (r *stockRepo) GetByID(id int) *models.Stock {
	for _, s := range r.store.stocks {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (r *stockRepo) GetByBarcode(barcode string) *models.Stock {
	for _, s := range r.store.stocks {
		if s.Barcode == barcode {
			return s
		}
	}
	return nil
}

func (r *stockRepo) GetByPartID(partID string) *models.Stock {
	for _, s := range r.store.stocks {
		if strings.EqualFold(s.PartID, partID) {
			return s
		}
	}
	return nil
}

func (r *stockRepo) List() []*models.Stock {
	return r.store.stocks
}

func (r *stockRepo) Delete(id int) {
	kept := r.store.stocks[:0]
	for _, s := range r.store.stocks {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	r.store.stocks = kept
}

func (r *stockRepo) InsertRow(row *models.StockLocation) {
	r.store.stockLocations = append(r.store.stockLocations, row)
}

func (r *stockRepo) Row(stockID, locationID int) *models.StockLocation {
	for _, row := range r.store.stockLocations {
		if row.StockID == stockID && row.LocationID == locationID {
			return row
		}
	}
	return nil
}

// RowsFor returns the ledger rows for a stock item in ascending location
// id order, so multi-row deductions drain rows deterministically.
func (r *stockRepo) RowsFor(stockID int) []*models.StockLocation {
	var rows []*models.StockLocation
	for _, row := range r.store.stockLocations {
		if row.StockID == stockID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].LocationID < rows[j].LocationID })
	return rows
}

func (r *stockRepo) DeleteRowsFor(stockID int) {
	kept := r.store.stockLocations[:0]
	for _, row := range r.store.stockLocations {
		if row.StockID != stockID {
			kept = append(kept, row)
		}
	}
	r.store.stockLocations = kept
}

func (r *stockRepo) HasRowsForLocation(locationID int) bool {
	for _, row := range r.store.stockLocations {
		if row.LocationID == locationID {
			return true
		}
	}
	return false
}

func (r *stockRepo) TotalQuantity(stockID int) int {
	total := 0
	for _, row := range r.store.stockLocations {
		if row.StockID == stockID {
			total += row.Quantity
		}
	}
	return total
}
