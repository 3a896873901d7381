package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/animals"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrForbidden      = errors.New("forbidden")
	ErrAnimalNotFound = errors.New("animal not found")
)

// AnimalOwners resuelve el dueño de un animal (lo implementa animals.Service).
type AnimalOwners interface {
	OwnerOf(ctx context.Context, animalID string) (string, error)
}

type Service struct {
	repo    Repository
	animals AnimalOwners
	now     func() time.Time
}

func NewService(repo Repository, owners AnimalOwners) *Service {
	return &Service{
		repo:    repo,
		animals: owners,
		now:     time.Now,
	}
}

type VaccinationInput struct {
	VaccineType     string
	ApplicationDate time.Time
	NextDoseDate    *time.Time
	Notes           string
}

type WeightInput struct {
	Weight       float64
	RecordedDate time.Time
	Notes        string
}

func (s *Service) RecordVaccination(ctx context.Context, animalID, ownerID string, in VaccinationInput) (Vaccination, error) {
	if strings.TrimSpace(in.VaccineType) == "" || in.ApplicationDate.IsZero() {
		return Vaccination{}, ErrInvalidInput
	}
	if in.NextDoseDate != nil && in.NextDoseDate.Before(in.ApplicationDate) {
		return Vaccination{}, ErrInvalidInput
	}
	if err := s.ensureOwner(ctx, animalID, ownerID); err != nil {
		return Vaccination{}, err
	}

	v := Vaccination{
		ID:              uuid.NewString(),
		AnimalID:        animalID,
		OwnerID:         ownerID,
		VaccineType:     strings.TrimSpace(in.VaccineType),
		ApplicationDate: in.ApplicationDate,
		NextDoseDate:    in.NextDoseDate,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       s.now(),
	}
	if err := s.repo.CreateVaccination(ctx, v); err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

func (s *Service) RecordWeight(ctx context.Context, animalID, ownerID string, in WeightInput) (Weight, error) {
	if in.Weight <= 0 || in.RecordedDate.IsZero() {
		return Weight{}, ErrInvalidInput
	}
	if err := s.ensureOwner(ctx, animalID, ownerID); err != nil {
		return Weight{}, err
	}

	w := Weight{
		ID:           uuid.NewString(),
		AnimalID:     animalID,
		OwnerID:      ownerID,
		Weight:       in.Weight,
		RecordedDate: in.RecordedDate,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    s.now(),
	}
	if err := s.repo.CreateWeight(ctx, w); err != nil {
		return Weight{}, err
	}
	return w, nil
}

func (s *Service) ListVaccinations(ctx context.Context, animalID, ownerID string) ([]Vaccination, error) {
	if err := s.ensureOwner(ctx, animalID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListVaccinationsByAnimal(ctx, animalID)
}

func (s *Service) ListWeights(ctx context.Context, animalID, ownerID string) ([]Weight, error) {
	if err := s.ensureOwner(ctx, animalID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListWeightsByAnimal(ctx, animalID)
}

// VaccinationsByOwner y WeightsByOwner alimentan el dashboard de estadísticas.
func (s *Service) VaccinationsByOwner(ctx context.Context, ownerID string) ([]Vaccination, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListVaccinationsByOwner(ctx, ownerID)
}

func (s *Service) WeightsByOwner(ctx context.Context, ownerID string) ([]Weight, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListWeightsByOwner(ctx, ownerID)
}

func (s *Service) ensureOwner(ctx context.Context, animalID, ownerID string) error {
	if strings.TrimSpace(animalID) == "" || strings.TrimSpace(ownerID) == "" {
		return ErrInvalidInput
	}
	owner, err := s.animals.OwnerOf(ctx, animalID)
	if err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			return ErrAnimalNotFound
		}
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	return nil
}
