package services

import (
	"context"
	"strings"
	"time"

	"stocktrack/internal/apperrors"
	"stocktrack/internal/models"
	"stocktrack/internal/repositories"
)

// BOMService implements the BOM registry. Creation and updates append
// bom_create / bom_update audit entries carrying the recipe.
type BOMService interface {
	List(ctx context.Context) ([]*models.BOM, error)
	Create(ctx context.Context, bom *models.BOM) (*models.BOM, error)
	Update(ctx context.Context, productBarcode string, bom *models.BOM) (*models.BOM, error)
	Delete(ctx context.Context, productBarcode string) error
}

type bomService struct {
	store   *repositories.Store
	bomRepo repositories.BOMRepository
	logRepo repositories.StockLogRepository
}

func NewBOMService(store *repositories.Store, bomRepo repositories.BOMRepository, logRepo repositories.StockLogRepository) BOMService {
	return &bomService{
		store:   store,
		bomRepo: bomRepo,
		logRepo: logRepo,
	}
}

func validateBOM(bom *models.BOM) error {
	if strings.TrimSpace(bom.ProductBarcode) == "" {
		return apperrors.Validationf("product_barcode is required")
	}
	if len(bom.Components) == 0 {
		return apperrors.Validationf("a BOM needs at least one component")
	}
	for code, qty := range bom.Components {
		if strings.TrimSpace(code) == "" {
			return apperrors.Validationf("component barcode cannot be empty")
		}
		if qty <= 0 {
			return apperrors.Validationf("component %s quantity must be positive", code)
		}
	}
	return nil
}

// detachedBOM returns a copy of a stored BOM, including its component
// map. Callers marshal results after the store lock is released, so live
// registry pointers must never leave the service.
func detachedBOM(b *models.BOM) *models.BOM {
	c := *b
	c.Components = make(map[string]int, len(b.Components))
	for code, qty := range b.Components {
		c.Components[code] = qty
	}
	return &c
}

func (s *bomService) appendLog(action, barcode string, details map[string]any) {
	s.logRepo.Append(&models.StockLog{
		Timestamp: time.Now().UTC(),
		Barcode:   barcode,
		Action:    action,
		Details:   details,
	})
}

func (s *bomService) List(ctx context.Context) ([]*models.BOM, error) {
	s.store.Lock()
	defer s.store.Unlock()

	boms := s.bomRepo.List()
	out := make([]*models.BOM, 0, len(boms))
	for _, b := range boms {
		out = append(out, detachedBOM(b))
	}
	return out, nil
}

func (s *bomService) Create(ctx context.Context, bom *models.BOM) (*models.BOM, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if err := validateBOM(bom); err != nil {
		return nil, err
	}
	if existing := s.bomRepo.GetByProductBarcode(bom.ProductBarcode); existing != nil {
		return nil, apperrors.Conflictf("BOM for product %s already exists", bom.ProductBarcode)
	}

	s.bomRepo.Insert(bom)
	s.appendLog(models.ActionBOMCreate, bom.ProductBarcode, map[string]any{
		"description": bom.Description,
		"components":  bom.Components,
	})
	return detachedBOM(bom), nil
}

// Update replaces the entire recipe for an existing product barcode.
func (s *bomService) Update(ctx context.Context, productBarcode string, bom *models.BOM) (*models.BOM, error) {
	s.store.Lock()
	defer s.store.Unlock()

	existing := s.bomRepo.GetByProductBarcode(productBarcode)
	if existing == nil {
		return nil, apperrors.NotFoundf("no BOM for product barcode %s", productBarcode)
	}
	bom.ProductBarcode = productBarcode
	if err := validateBOM(bom); err != nil {
		return nil, err
	}

	existing.Description = bom.Description
	existing.Components = bom.Components

	s.appendLog(models.ActionBOMUpdate, productBarcode, map[string]any{
		"description": existing.Description,
		"components":  existing.Components,
	})
	return detachedBOM(existing), nil
}

func (s *bomService) Delete(ctx context.Context, productBarcode string) error {
	s.store.Lock()
	defer s.store.Unlock()

	if s.bomRepo.GetByProductBarcode(productBarcode) == nil {
		return apperrors.NotFoundf("no BOM for product barcode %s", productBarcode)
	}
	s.bomRepo.Delete(productBarcode)
	s.appendLog(models.ActionBOMUpdate, productBarcode, map[string]any{
		"deleted": true,
	})
	return nil
}
