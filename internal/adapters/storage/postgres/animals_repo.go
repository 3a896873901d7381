package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/animals"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

const animalColumns = `
	id, owner_id,
	name, identification_number, species, breed,
	birth_date, sex, stage,
	for_sale, sale_price, sale_status, buyer_id,
	transit_permit, sale_invoice, movement_certificate,
	sanitary_certificate, brand_patent, photo,
	documents_complete, mother_id,
	created_at, updated_at`

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
	`,
		a.ID,
		a.OwnerID,
		a.Name,
		a.IdentificationNumber,
		a.Species,
		a.Breed,
		toNullDate(a.BirthDate),
		string(a.Sex),
		string(a.Stage),
		a.ForSale,
		a.SalePrice,
		string(a.SaleStatus),
		a.BuyerID,
		a.Documents.TransitPermit,
		a.Documents.SaleInvoice,
		a.Documents.MovementCertificate,
		a.Documents.SanitaryCertificate,
		a.Documents.BrandPatent,
		a.Documents.Photo,
		a.DocumentsComplete,
		a.MotherID,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return mapWriteError(err)
}

// UpdateSale condiciona el UPDATE al sale_status leído; 0 filas = no existe o perdió la carrera.
func (r *AnimalsRepo) UpdateSale(ctx context.Context, a animals.Animal, from animals.SaleStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			owner_id = $2,
			name = $3,
			identification_number = $4,
			species = $5,
			breed = $6,
			birth_date = $7,
			sex = $8,
			stage = $9,
			for_sale = $10,
			sale_price = $11,
			sale_status = $12,
			buyer_id = $13,
			transit_permit = $14,
			sale_invoice = $15,
			movement_certificate = $16,
			sanitary_certificate = $17,
			brand_patent = $18,
			photo = $19,
			documents_complete = $20,
			mother_id = $21,
			updated_at = $22
		WHERE id = $1 AND sale_status = $23
	`,
		a.ID,
		a.OwnerID,
		a.Name,
		a.IdentificationNumber,
		a.Species,
		a.Breed,
		toNullDate(a.BirthDate),
		string(a.Sex),
		string(a.Stage),
		a.ForSale,
		a.SalePrice,
		string(a.SaleStatus),
		a.BuyerID,
		a.Documents.TransitPermit,
		a.Documents.SaleInvoice,
		a.Documents.MovementCertificate,
		a.Documents.SanitaryCertificate,
		a.Documents.BrandPatent,
		a.Documents.Photo,
		a.DocumentsComplete,
		a.MotherID,
		a.UpdatedAt,
		string(from),
	)
	if err != nil {
		return mapWriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM animals WHERE id = $1)`, a.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return animals.ErrNotFound
	}
	return animals.ErrSaleConflict
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id)
	return scanAnimal(row)
}

func (r *AnimalsRepo) FindByIdentification(ctx context.Context, ownerID, identificationNumber string) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE owner_id = $1 AND identification_number = $2
		LIMIT 1
	`, ownerID, identificationNumber)
	return scanAnimal(row)
}

func (r *AnimalsRepo) ListByOwner(ctx context.Context, ownerID string) ([]animals.Animal, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}
	return r.list(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, ownerID)
}

func (r *AnimalsRepo) ListForSale(ctx context.Context) ([]animals.Animal, error) {
	return r.list(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE for_sale = TRUE AND sale_status = $1
		ORDER BY created_at ASC
	`, string(animals.SaleStatusForSale))
}

func (r *AnimalsRepo) list(ctx context.Context, query string, args ...any) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s scanner) (animals.Animal, error) {
	var (
		a          animals.Animal
		bd         sql.NullTime
		sex        string
		stage      string
		price      decimal.NullDecimal
		saleStatus string
	)
	if err := s.Scan(
		&a.ID,
		&a.OwnerID,
		&a.Name,
		&a.IdentificationNumber,
		&a.Species,
		&a.Breed,
		&bd,
		&sex,
		&stage,
		&a.ForSale,
		&price,
		&saleStatus,
		&a.BuyerID,
		&a.Documents.TransitPermit,
		&a.Documents.SaleInvoice,
		&a.Documents.MovementCertificate,
		&a.Documents.SanitaryCertificate,
		&a.Documents.BrandPatent,
		&a.Documents.Photo,
		&a.DocumentsComplete,
		&a.MotherID,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}

	a.Sex = animals.Sex(sex)
	a.Stage = animals.Stage(stage)
	a.SaleStatus = animals.SaleStatus(saleStatus)
	a.SalePrice = price
	if bd.Valid {
		t := bd.Time
		// ojo: birth_date es date, pgx lo puede mapear a time.Time midnight UTC
		a.BirthDate = &t
	}
	return a, nil
}

// El índice único (owner_id, identification_number) es la última barrera ante altas concurrentes.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return animals.ErrDuplicateIdentification
	}
	return err
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
