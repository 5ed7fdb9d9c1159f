package services

import (
	"context"
	"strings"

	"stocktrack/internal/apperrors"
	"stocktrack/internal/models"
	"stocktrack/internal/repositories"
)

// CategoryService implements the category tag store: plain CRUD with
// case-insensitive name uniqueness on create.
type CategoryService interface {
	List(ctx context.Context) ([]*models.CategoryTag, error)
	Create(ctx context.Context, name, color string) (*models.CategoryTag, error)
	Delete(ctx context.Context, id int) error
}

type categoryService struct {
	store        *repositories.Store
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(store *repositories.Store, categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{
		store:        store,
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) List(ctx context.Context) ([]*models.CategoryTag, error) {
	s.store.Lock()
	defer s.store.Unlock()

	tags := s.categoryRepo.List()
	out := make([]*models.CategoryTag, len(tags))
	copy(out, tags)
	return out, nil
}

func (s *categoryService) Create(ctx context.Context, name, color string) (*models.CategoryTag, error) {
	s.store.Lock()
	defer s.store.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validationf("category name is required")
	}
	if existing := s.categoryRepo.GetByName(name); existing != nil {
		return nil, apperrors.Conflictf("category %q already exists", existing.Name)
	}

	tag := &models.CategoryTag{
		ID:    s.categoryRepo.NextID(),
		Name:  name,
		Color: color,
	}
	s.categoryRepo.Insert(tag)
	return tag, nil
}

func (s *categoryService) Delete(ctx context.Context, id int) error {
	s.store.Lock()
	defer s.store.Unlock()

	if s.categoryRepo.GetByID(id) == nil {
		return apperrors.NotFoundf("category %d not found", id)
	}
	s.categoryRepo.Delete(id)
	return nil
}
