package services

import (
	"context"

	"stocktrack/internal/models"
	"stocktrack/internal/repositories"
)

// StockLogService exposes the audit trail: pure read, chronological
// order. Entries are appended by the mutating services, never here.
type StockLogService interface {
	List(ctx context.Context) ([]*models.StockLog, error)
}

type stockLogService struct {
	store   *repositories.Store
	logRepo repositories.StockLogRepository
}

func NewStockLogService(store *repositories.Store, logRepo repositories.StockLogRepository) StockLogService {
	return &stockLogService{
		store:   store,
		logRepo: logRepo,
	}
}

func (s *stockLogService) List(ctx context.Context) ([]*models.StockLog, error) {
	s.store.Lock()
	defer s.store.Unlock()

	logs := s.logRepo.List()
	out := make([]*models.StockLog, len(logs))
	copy(out, logs)
	return out, nil
}
