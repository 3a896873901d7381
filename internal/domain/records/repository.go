package records

import "context"

type Repository interface {
	CreateVaccination(ctx context.Context, v Vaccination) error
	CreateWeight(ctx context.Context, w Weight) error

	// Listados por animal: más reciente primero.
	ListVaccinationsByAnimal(ctx context.Context, animalID string) ([]Vaccination, error)
	ListWeightsByAnimal(ctx context.Context, animalID string) ([]Weight, error)

	ListVaccinationsByOwner(ctx context.Context, ownerID string) ([]Vaccination, error)
	ListWeightsByOwner(ctx context.Context, ownerID string) ([]Weight, error)
}
