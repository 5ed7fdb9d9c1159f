package repositories

import (
	"strings"

	"stocktrack/internal/models"
)

// CategoryRepository owns the category tag store. All methods require the
// store lock.
type CategoryRepository interface {
	NextID() int
	Insert(tag *models.CategoryTag)
	GetByID(id int) *models.CategoryTag
	GetByName(name string) *models.CategoryTag
	List() []*models.CategoryTag
	Delete(id int)
}

type categoryRepo struct {
	store *Store
}

func NewCategoryRepo(store *Store) CategoryRepository {
	return &categoryRepo{store: store}
}

func (r *categoryRepo) NextID() int {
	max := 0
	for _, c := range r.store.categories {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

func (r *categoryRepo) Insert(tag *models.CategoryTag) {
	r.store.categories = append(r.store.categories, tag)
}

func (r *categoryRepo) GetByID(id int) *models.CategoryTag {
	for _, c := range r.store.categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (r *categoryRepo) GetByName(name string) *models.CategoryTag {
	for _, c := range r.store.categories {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

func (r *categoryRepo) List() []*models.CategoryTag {
	return r.store.categories
}

func (r *categoryRepo) Delete(id int) {
	kept := r.store.categories[:0]
	for _, c := range r.store.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	r.store.categories = kept
}
