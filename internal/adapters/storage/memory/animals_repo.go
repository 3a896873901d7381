package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/animals"
)

type animalRepo struct {
	mu   sync.RWMutex
	byID map[string]animals.Animal
}

func NewAnimalRepo() animals.Repository {
	return &animalRepo{
		byID: make(map[string]animals.Animal),
	}
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	r.byID[a.ID] = a
	return nil
}

// UpdateSale compara y escribe bajo el mismo lock.
func (r *animalRepo) UpdateSale(ctx context.Context, a animals.Animal, from animals.SaleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.byID[a.ID]
	if !exists {
		return animals.ErrNotFound
	}
	if current.SaleStatus != from {
		return animals.ErrSaleConflict
	}
	r.byID[a.ID] = a
	return nil
}

func (r *animalRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return animals.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *animalRepo) ListByOwner(ctx context.Context, ownerID string) ([]animals.Animal, error) {
	return r.filter(func(a animals.Animal) bool { return a.OwnerID == ownerID }), nil
}

func (r *animalRepo) FindByIdentification(ctx context.Context, ownerID, identificationNumber string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.OwnerID == ownerID && a.IdentificationNumber == identificationNumber {
			return a, nil
		}
	}
	return animals.Animal{}, animals.ErrNotFound
}

func (r *animalRepo) ListForSale(ctx context.Context) ([]animals.Animal, error) {
	return r.filter(func(a animals.Animal) bool {
		return a.ForSale && a.SaleStatus == animals.SaleStatusForSale
	}), nil
}

func (r *animalRepo) filter(keep func(animals.Animal) bool) []animals.Animal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, a)
		}
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
