package records

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/animals"
)

type testRepo struct {
	vaccinations []Vaccination
	weights      []Weight
}

func (r *testRepo) CreateVaccination(ctx context.Context, v Vaccination) error {
	r.vaccinations = append(r.vaccinations, v)
	return nil
}

func (r *testRepo) CreateWeight(ctx context.Context, w Weight) error {
	r.weights = append(r.weights, w)
	return nil
}

func (r *testRepo) ListVaccinationsByAnimal(ctx context.Context, animalID string) ([]Vaccination, error) {
	out := []Vaccination{}
	for _, v := range r.vaccinations {
		if v.AnimalID == animalID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ApplicationDate.After(out[j].ApplicationDate) })
	return out, nil
}

func (r *testRepo) ListWeightsByAnimal(ctx context.Context, animalID string) ([]Weight, error) {
	out := []Weight{}
	for _, w := range r.weights {
		if w.AnimalID == animalID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *testRepo) ListVaccinationsByOwner(ctx context.Context, ownerID string) ([]Vaccination, error) {
	out := []Vaccination{}
	for _, v := range r.vaccinations {
		if v.OwnerID == ownerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *testRepo) ListWeightsByOwner(ctx context.Context, ownerID string) ([]Weight, error) {
	out := []Weight{}
	for _, w := range r.weights {
		if w.OwnerID == ownerID {
			out = append(out, w)
		}
	}
	return out, nil
}

// owners simula animals.Service.OwnerOf.
type owners map[string]string

func (o owners) OwnerOf(ctx context.Context, animalID string) (string, error) {
	owner, ok := o[animalID]
	if !ok {
		return "", animals.ErrNotFound
	}
	return owner, nil
}

func newTestService() (*Service, *testRepo) {
	repo := &testRepo{}
	svc := NewService(repo, owners{"a1": "u1", "a2": "u2"})
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc, repo
}

func TestRecordVaccination_OK(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	applied := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	next := applied.AddDate(0, 6, 0)

	v, err := svc.RecordVaccination(ctx, "a1", "u1", VaccinationInput{
		VaccineType:     "  Brucelosis ",
		ApplicationDate: applied,
		NextDoseDate:    &next,
	})
	if err != nil {
		t.Fatalf("RecordVaccination: %v", err)
	}
	if v.ID == "" || v.OwnerID != "u1" || v.VaccineType != "Brucelosis" {
		t.Fatalf("unexpected vaccination: %+v", v)
	}
	if !v.CreatedAt.Equal(svc.now()) {
		t.Fatalf("created_at = %v", v.CreatedAt)
	}
	if len(repo.vaccinations) != 1 {
		t.Fatalf("expected 1 stored, got %d", len(repo.vaccinations))
	}
}

func TestRecordVaccination_Rules(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	applied := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	before := applied.AddDate(0, 0, -1)

	cases := []struct {
		name     string
		animalID string
		ownerID  string
		in       VaccinationInput
		want     error
	}{
		{"missing type", "a1", "u1", VaccinationInput{ApplicationDate: applied}, ErrInvalidInput},
		{"zero date", "a1", "u1", VaccinationInput{VaccineType: "Rabia"}, ErrInvalidInput},
		{"next dose before", "a1", "u1", VaccinationInput{VaccineType: "Rabia", ApplicationDate: applied, NextDoseDate: &before}, ErrInvalidInput},
		{"foreign animal", "a2", "u1", VaccinationInput{VaccineType: "Rabia", ApplicationDate: applied}, ErrForbidden},
		{"missing animal", "zz", "u1", VaccinationInput{VaccineType: "Rabia", ApplicationDate: applied}, ErrAnimalNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordVaccination(ctx, tc.animalID, tc.ownerID, tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRecordWeight_RequiresPositiveWeight(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	day := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	if _, err := svc.RecordWeight(ctx, "a1", "u1", WeightInput{Weight: 0, RecordedDate: day}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.RecordWeight(ctx, "a1", "u1", WeightInput{Weight: -3, RecordedDate: day}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	w, err := svc.RecordWeight(ctx, "a1", "u1", WeightInput{Weight: 312.5, RecordedDate: day, Notes: " báscula "})
	if err != nil {
		t.Fatalf("RecordWeight: %v", err)
	}
	if w.Weight != 312.5 || w.Notes != "báscula" {
		t.Fatalf("unexpected weight: %+v", w)
	}
}

func TestListVaccinations_NewestFirstAndOwnerScoped(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, d := range []int{1, 20, 10} {
		_, err := svc.RecordVaccination(ctx, "a1", "u1", VaccinationInput{
			VaccineType:     "Clostridiales",
			ApplicationDate: time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("RecordVaccination: %v", err)
		}
	}

	items, err := svc.ListVaccinations(ctx, "a1", "u1")
	if err != nil {
		t.Fatalf("ListVaccinations: %v", err)
	}
	if len(items) != 3 || items[0].ApplicationDate.Day() != 20 || items[2].ApplicationDate.Day() != 1 {
		t.Fatalf("unexpected order: %+v", items)
	}

	if _, err := svc.ListVaccinations(ctx, "a1", "u2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	byOwner, err := svc.VaccinationsByOwner(ctx, "u1")
	if err != nil || len(byOwner) != 3 {
		t.Fatalf("VaccinationsByOwner: %v (%d)", err, len(byOwner))
	}
	if _, err := svc.WeightsByOwner(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
