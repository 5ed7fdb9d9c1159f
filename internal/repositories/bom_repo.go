package repositories

import "stocktrack/internal/models"

// BOMRepository owns the BOM registry, keyed by product barcode. All
// methods require the store lock.
type BOMRepository interface {
	Insert(bom *models.BOM)
	GetByProductBarcode(barcode string) *models.BOM
	List() []*models.BOM
	Delete(barcode string)
}

type bomRepo struct {
	store *Store
}

func NewBOMRepo(store *Store) BOMRepository {
	return &bomRepo{store: store}
}

func (r *bomRepo) Insert(bom *models.BOM) {
	r.store.boms = append(r.store.boms, bom)
}

func (r *bomRepo) GetByProductBarcode(barcode string) *models.BOM {
	for _, b := range r.store.boms {
		if b.ProductBarcode == barcode {
			return b
		}
	}
	return nil
}

func (r *bomRepo) List() []*models.BOM {
	return r.store.boms
}

func (r *bomRepo) Delete(barcode string) {
	kept := r.store.boms[:0]
	for _, b := range r.store.boms {
		if b.ProductBarcode != barcode {
			kept = append(kept, b)
		}
	}
	r.store.boms = kept
}
