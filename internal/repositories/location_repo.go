package repositories

import (
	"strings"

	"stocktrack/internal/models"
)

// LocationRepository owns the location registry. All methods require the
// store lock.
type LocationRepository interface {
	NextID() int
	Insert(location *models.Location)
	GetByID(id int) *models.Location
	GetByName(name string) *models.Location
	List() []*models.Location
	Delete(id int)
}

type locationRepo struct {
	store *Store
}

func NewLocationRepo(store *Store) LocationRepository {
	return &locationRepo{store: store}
}

func (r *locationRepo) NextID() int {
	max := 0
	for _, l := range r.store.locations {
		if l.ID > max {
			max = l.ID
		}
	}
	return max + 1
}

func (r *locationRepo) Insert(location *models.Location) {
	r.store.locations = append(r.store.locations, location)
}

func (r *locationRepo) GetByID(id int) *models.Location {
	for _, l := range r.store.locations {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// GetByName matches case-insensitively on the trimmed name.
func (r *locationRepo) GetByName(name string) *models.Location {
	name = strings.TrimSpace(name)
	for _, l := range r.store.locations {
		if strings.EqualFold(l.Name, name) {
			return l
		}
	}
	return nil
}

func (r *locationRepo) List() []*models.Location {
	return r.store.locations
}

func (r *locationRepo) Delete(id int) {
	kept := r.store.locations[:0]
	for _, l := range r.store.locations {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	r.store.locations = kept
}
