package statistics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/animals"
	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/records"
)

var ErrInvalidInput = errors.New("invalid input")

type HerdSource interface {
	ListByOwner(ctx context.Context, ownerID string) ([]animals.Animal, error)
}

type RecordSource interface {
	VaccinationsByOwner(ctx context.Context, ownerID string) ([]records.Vaccination, error)
	WeightsByOwner(ctx context.Context, ownerID string) ([]records.Weight, error)
}

type Service struct {
	herd            HerdSource
	records         RecordSource
	defaultCapacity int
	now             func() time.Time
}

// NewService: defaultCapacity se usa cuando el request no trae max_capacity.
func NewService(herd HerdSource, recs RecordSource, defaultCapacity int) *Service {
	return &Service{
		herd:            herd,
		records:         recs,
		defaultCapacity: defaultCapacity,
		now:             time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context, ownerID string, maxCapacity int) (CompleteStatistics, error) {
	if strings.TrimSpace(ownerID) == "" {
		return CompleteStatistics{}, ErrInvalidInput
	}

	herd, err := s.herd.ListByOwner(ctx, ownerID)
	if err != nil {
		return CompleteStatistics{}, err
	}
	vaccinations, err := s.records.VaccinationsByOwner(ctx, ownerID)
	if err != nil {
		return CompleteStatistics{}, err
	}
	weights, err := s.records.WeightsByOwner(ctx, ownerID)
	if err != nil {
		return CompleteStatistics{}, err
	}

	if maxCapacity <= 0 {
		maxCapacity = s.defaultCapacity
	}
	return Calculate(herd, vaccinations, weights, Options{Now: s.now(), MaxCapacity: maxCapacity}), nil
}
