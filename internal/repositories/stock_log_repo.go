package repositories

import "stocktrack/internal/models"

// StockLogRepository owns the append-only audit log. Entries are only
// ever appended; List returns them in insertion order. All methods
// require the store lock.
type StockLogRepository interface {
	Append(entry *models.StockLog)
	List() []*models.StockLog
}

type stockLogRepo struct {
	store *Store
}

func NewStockLogRepo(store *Store) StockLogRepository {
	return &stockLogRepo{store: store}
}

func (r *stockLogRepo) Append(entry *models.StockLog) {
	r.store.logs = append(r.store.logs, entry)
}

func (r *stockLogRepo) List() []*models.StockLog {
	return r.store.logs
}
