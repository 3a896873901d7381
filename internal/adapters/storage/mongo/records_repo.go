package mongo

import (
	"context"
	"time"

	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/records"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type vaccinationDoc struct {
	ID              string     `bson:"_id"`
	AnimalID        string     `bson:"animalId"`
	OwnerID         string     `bson:"ownerId"`
	VaccineType     string     `bson:"vaccineType"`
	ApplicationDate time.Time  `bson:"applicationDate"`
	NextDoseDate    *time.Time `bson:"nextDoseDate,omitempty"`
	Notes           string     `bson:"notes,omitempty"`
	CreatedAt       time.Time  `bson:"createdAt"`
}

type weightDoc struct {
	ID           string    `bson:"_id"`
	AnimalID     string    `bson:"animalId"`
	OwnerID      string    `bson:"ownerId"`
	Weight       float64   `bson:"weight"`
	RecordedDate time.Time `bson:"recordedDate"`
	Notes        string    `bson:"notes,omitempty"`
	CreatedAt    time.Time `bson:"createdAt"`
}

type RecordsRepo struct {
	vaccinations *mongo.Collection
	weights      *mongo.Collection
}

func NewRecordsRepo(db *mongo.Database) *RecordsRepo {
	return &RecordsRepo{
		vaccinations: db.Collection(vaccinationsCollection),
		weights:      db.Collection(weightsCollection),
	}
}

func (r *RecordsRepo) CreateVaccination(ctx context.Context, v records.Vaccination) error {
	_, err := r.vaccinations.InsertOne(ctx, vaccinationDoc(v))
	return err
}

func (r *RecordsRepo) CreateWeight(ctx context.Context, w records.Weight) error {
	_, err := r.weights.InsertOne(ctx, weightDoc(w))
	return err
}

func (r *RecordsRepo) ListVaccinationsByAnimal(ctx context.Context, animalID string) ([]records.Vaccination, error) {
	return r.findVaccinations(ctx, bson.M{"animalId": animalID})
}

func (r *RecordsRepo) ListVaccinationsByOwner(ctx context.Context, ownerID string) ([]records.Vaccination, error) {
	return r.findVaccinations(ctx, bson.M{"ownerId": ownerID})
}

func (r *RecordsRepo) ListWeightsByAnimal(ctx context.Context, animalID string) ([]records.Weight, error) {
	return r.findWeights(ctx, bson.M{"animalId": animalID})
}

func (r *RecordsRepo) ListWeightsByOwner(ctx context.Context, ownerID string) ([]records.Weight, error) {
	return r.findWeights(ctx, bson.M{"ownerId": ownerID})
}

func (r *RecordsRepo) findVaccinations(ctx context.Context, filter bson.M) ([]records.Vaccination, error) {
	opts := options.Find().SetSort(bson.D{{Key: "applicationDate", Value: -1}})
	cur, err := r.vaccinations.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []vaccinationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]records.Vaccination, 0, len(docs))
	for _, d := range docs {
		out = append(out, records.Vaccination(d))
	}
	return out, nil
}

func (r *RecordsRepo) findWeights(ctx context.Context, filter bson.M) ([]records.Weight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recordedDate", Value: -1}})
	cur, err := r.weights.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []weightDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]records.Weight, 0, len(docs))
	for _, d := range docs {
		out = append(out, records.Weight(d))
	}
	return out, nil
}
