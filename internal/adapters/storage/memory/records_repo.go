package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/records"
)

type recordRepo struct {
	mu           sync.RWMutex
	vaccinations map[string]records.Vaccination
	weights      map[string]records.Weight
}

func NewRecordRepo() records.Repository {
	return &recordRepo{
		vaccinations: make(map[string]records.Vaccination),
		weights:      make(map[string]records.Weight),
	}
}

func (r *recordRepo) CreateVaccination(ctx context.Context, v records.Vaccination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.ID == "" {
		return errors.New("vaccination id required")
	}
	if _, exists := r.vaccinations[v.ID]; exists {
		return errors.New("vaccination already exists")
	}
	r.vaccinations[v.ID] = v
	return nil
}

func (r *recordRepo) CreateWeight(ctx context.Context, w records.Weight) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w.ID == "" {
		return errors.New("weight id required")
	}
	if _, exists := r.weights[w.ID]; exists {
		return errors.New("weight already exists")
	}
	r.weights[w.ID] = w
	return nil
}

func (r *recordRepo) ListVaccinationsByAnimal(ctx context.Context, animalID string) ([]records.Vaccination, error) {
	return r.vaccinationsWhere(func(v records.Vaccination) bool { return v.AnimalID == animalID }), nil
}

func (r *recordRepo) ListVaccinationsByOwner(ctx context.Context, ownerID string) ([]records.Vaccination, error) {
	return r.vaccinationsWhere(func(v records.Vaccination) bool { return v.OwnerID == ownerID }), nil
}

func (r *recordRepo) ListWeightsByAnimal(ctx context.Context, animalID string) ([]records.Weight, error) {
	return r.weightsWhere(func(w records.Weight) bool { return w.AnimalID == animalID }), nil
}

func (r *recordRepo) ListWeightsByOwner(ctx context.Context, ownerID string) ([]records.Weight, error) {
	return r.weightsWhere(func(w records.Weight) bool { return w.OwnerID == ownerID }), nil
}

func (r *recordRepo) vaccinationsWhere(keep func(records.Vaccination) bool) []records.Vaccination {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.Vaccination, 0)
	for _, v := range r.vaccinations {
		if keep(v) {
			out = append(out, v)
		}
	}
	// más reciente primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].ApplicationDate.After(out[j].ApplicationDate)
	})
	return out
}

func (r *recordRepo) weightsWhere(keep func(records.Weight) bool) []records.Weight {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.Weight, 0)
	for _, w := range r.weights {
		if keep(w) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RecordedDate.After(out[j].RecordedDate)
	})
	return out
}
