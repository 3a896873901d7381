package postgres

import (
	"context"
	"database/sql"

	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/records"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) CreateVaccination(ctx context.Context, v records.Vaccination) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccinations (
			id, animal_id, owner_id,
			vaccine_type, application_date, next_dose_date,
			notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		v.ID,
		v.AnimalID,
		v.OwnerID,
		v.VaccineType,
		v.ApplicationDate,
		toNullDate(v.NextDoseDate),
		v.Notes,
		v.CreatedAt,
	)
	return err
}

func (r *RecordsRepo) CreateWeight(ctx context.Context, w records.Weight) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO weights (
			id, animal_id, owner_id,
			weight, recorded_date,
			notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		w.ID,
		w.AnimalID,
		w.OwnerID,
		w.Weight,
		w.RecordedDate,
		w.Notes,
		w.CreatedAt,
	)
	return err
}

const vaccinationSelect = `
	SELECT id, animal_id, owner_id, vaccine_type, application_date, next_dose_date, notes, created_at
	FROM vaccinations`

const weightSelect = `
	SELECT id, animal_id, owner_id, weight, recorded_date, notes, created_at
	FROM weights`

func (r *RecordsRepo) ListVaccinationsByAnimal(ctx context.Context, animalID string) ([]records.Vaccination, error) {
	return r.vaccinations(ctx, vaccinationSelect+` WHERE animal_id = $1 ORDER BY application_date DESC`, animalID)
}

func (r *RecordsRepo) ListVaccinationsByOwner(ctx context.Context, ownerID string) ([]records.Vaccination, error) {
	return r.vaccinations(ctx, vaccinationSelect+` WHERE owner_id = $1 ORDER BY application_date DESC`, ownerID)
}

func (r *RecordsRepo) ListWeightsByAnimal(ctx context.Context, animalID string) ([]records.Weight, error) {
	return r.weights(ctx, weightSelect+` WHERE animal_id = $1 ORDER BY recorded_date DESC`, animalID)
}

func (r *RecordsRepo) ListWeightsByOwner(ctx context.Context, ownerID string) ([]records.Weight, error) {
	return r.weights(ctx, weightSelect+` WHERE owner_id = $1 ORDER BY recorded_date DESC`, ownerID)
}

func (r *RecordsRepo) vaccinations(ctx context.Context, query string, arg string) ([]records.Vaccination, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Vaccination, 0)
	for rows.Next() {
		var v records.Vaccination
		var next sql.NullTime
		if err := rows.Scan(
			&v.ID,
			&v.AnimalID,
			&v.OwnerID,
			&v.VaccineType,
			&v.ApplicationDate,
			&next,
			&v.Notes,
			&v.CreatedAt,
		); err != nil {
			return nil, err
		}
		if next.Valid {
			t := next.Time
			v.NextDoseDate = &t
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *RecordsRepo) weights(ctx context.Context, query string, arg string) ([]records.Weight, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Weight, 0)
	for rows.Next() {
		var w records.Weight
		if err := rows.Scan(
			&w.ID,
			&w.AnimalID,
			&w.OwnerID,
			&w.Weight,
			&w.RecordedDate,
			&w.Notes,
			&w.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
