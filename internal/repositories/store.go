// Package repositories holds the in-memory registries and the repository
// objects that own them. All registries live in one Store guarded by a
// single mutex: composite operations (assembly, BOM-triggered scan-add)
// must see and mutate every registry inside one critical section.
// Repository methods therefore assume the caller holds the store lock;
// services take it once per operation.
package repositories

import (
	"sync"

	"stocktrack/internal/models"
)

// Store is the single unit of mutable state: stock items, ledger rows,
// locations, BOMs, the audit log and category tags.
type Store struct {
	mu sync.Mutex

	stocks         []*models.Stock
	stockLocations []*models.StockLocation
	locations      []*models.Location
	boms           []*models.BOM
	logs           []*models.StockLog
	categories     []*models.CategoryTag
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Lock acquires the store-wide mutex. Hold it for the full duration of an
// operation, including every repository call it makes.
func (s *Store) Lock() { s.mu.Lock() }

// Unlock releases the store-wide mutex.
func (s *Store) Unlock() { s.mu.Unlock() }
