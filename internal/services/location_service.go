package services

import (
	"context"
	"log"
	"strings"

	"stocktrack/internal/apperrors"
	"stocktrack/internal/caching"
	"stocktrack/internal/models"
	"stocktrack/internal/repositories"
)

// LocationCreateRequest carries the attributes of a new or updated
// storage location. On update, empty optional fields keep their current
// values.
type LocationCreateRequest struct {
	Name            string `json:"name"`
	LocationType    string `json:"locationType"`
	StorageCategory string `json:"storageCategory"`
	Company         string `json:"company"`
}

// LocationSearchFilter filters location listings.
type LocationSearchFilter struct {
	Search string `query:"search"` // case-insensitive substring on name
	Type   string `query:"type"`   // case-insensitive equality on locationType
}

// LocationService implements the location registry: name-unique CRUD with
// a referential-integrity guard on deletion.
type LocationService interface {
	Create(ctx context.Context, req *LocationCreateRequest) (*models.Location, error)
	List(ctx context.Context, filter *LocationSearchFilter) ([]*models.Location, error)
	GetByID(ctx context.Context, id int) (*models.Location, error)
	Update(ctx context.Context, id int, req *LocationCreateRequest) (*models.Location, error)
	Delete(ctx context.Context, id int) error
}

type locationService struct {
	store        *repositories.Store
	locationRepo repositories.LocationRepository
	stockRepo    repositories.StockRepository
	cache        caching.CacheService
}

func NewLocationService(store *repositories.Store, locationRepo repositories.LocationRepository, stockRepo repositories.StockRepository, cache caching.CacheService) LocationService {
	return &locationService{
		store:        store,
		locationRepo: locationRepo,
		stockRepo:    stockRepo,
		cache:        cache,
	}
}

// detached returns a copy of the stored location. Callers marshal results
// after the store lock is released, so live registry pointers must never
// leave the service.
func detached(l *models.Location) *models.Location {
	c := *l
	return &c
}

// validateName enforces the trimmed minimum length and case-insensitive
// uniqueness, excluding the location being updated.
func (s *locationService) validateName(name string, excludeID int) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return "", apperrors.Validationf("location name must be at least 2 characters")
	}
	if existing := s.locationRepo.GetByName(name); existing != nil && existing.ID != excludeID {
		return "", apperrors.Conflictf("location with name %q already exists", existing.Name)
	}
	return name, nil
}

func (s *locationService) Create(ctx context.Context, req *LocationCreateRequest) (*models.Location, error) {
	s.store.Lock()
	defer s.store.Unlock()

	name, err := s.validateName(req.Name, 0)
	if err != nil {
		return nil, err
	}

	location := &models.Location{
		ID:              s.locationRepo.NextID(),
		Name:            name,
		LocationType:    req.LocationType,
		StorageCategory: req.StorageCategory,
		Company:         req.Company,
	}
	if location.LocationType == "" {
		location.LocationType = models.DefaultLocationType
	}
	if location.Company == "" {
		location.Company = models.DefaultCompany
	}
	s.locationRepo.Insert(location)
	return detached(location), nil
}

func (s *locationService) List(ctx context.Context, filter *LocationSearchFilter) ([]*models.Location, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if filter == nil {
		filter = &LocationSearchFilter{}
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	locType := strings.TrimSpace(filter.Type)

	results := []*models.Location{}
	for _, l := range s.locationRepo.List() {
		if search != "" && !strings.Contains(strings.ToLower(l.Name), search) {
			continue
		}
		if locType != "" && !strings.EqualFold(l.LocationType, locType) {
			continue
		}
		results = append(results, detached(l))
	}
	return results, nil
}

func (s *locationService) GetByID(ctx context.Context, id int) (*models.Location, error) {
	s.store.Lock()
	defer s.store.Unlock()

	location := s.locationRepo.GetByID(id)
	if location == nil {
		return nil, apperrors.NotFoundf("location %d not found", id)
	}
	return detached(location), nil
}

func (s *locationService) Update(ctx context.Context, id int, req *LocationCreateRequest) (*models.Location, error) {
	s.store.Lock()
	defer s.store.Unlock()

	location := s.locationRepo.GetByID(id)
	if location == nil {
		return nil, apperrors.NotFoundf("location %d not found", id)
	}
	name, err := s.validateName(req.Name, id)
	if err != nil {
		return nil, err
	}

	renamed := location.Name != name
	location.Name = name
	if req.LocationType != "" {
		location.LocationType = req.LocationType
	}
	if req.StorageCategory != "" {
		location.StorageCategory = req.StorageCategory
	}
	if req.Company != "" {
		location.Company = req.Company
	}

	// Cached stock responses embed the location name; drop them when it
	// changes so barcode lookups never serve the old name for a full TTL.
	if renamed {
		for _, stock := range s.stockRepo.List() {
			if s.stockRepo.Row(stock.ID, id) == nil {
				continue
			}
			if err := s.cache.DeleteStock(ctx, stock.Barcode); err != nil {
				log.Printf("Failed to invalidate stock cache for %s: %v", stock.Barcode, err)
			}
		}
	}

	return detached(location), nil
}

func (s *locationService) Delete(ctx context.Context, id int) error {
	s.store.Lock()
	defer s.store.Unlock()

	if s.locationRepo.GetByID(id) == nil {
		return apperrors.NotFoundf("location %d not found", id)
	}
	// Refuse while any ledger row still references the location, even a
	// zero-quantity one.
	if s.stockRepo.HasRowsForLocation(id) {
		return apperrors.Validationf("location %d still has stock assigned to it", id)
	}
	s.locationRepo.Delete(id)
	return nil
}
