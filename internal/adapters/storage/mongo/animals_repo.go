package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/animals"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type documentsDoc struct {
	TransitPermit       string `bson:"transitPermit,omitempty"`
	SaleInvoice         string `bson:"saleInvoice,omitempty"`
	MovementCertificate string `bson:"movementCertificate,omitempty"`
	SanitaryCertificate string `bson:"sanitaryCertificate,omitempty"`
	BrandPatent         string `bson:"brandPatent,omitempty"`
	Photo               string `bson:"photo,omitempty"`
}

type animalDoc struct {
	ID                   string       `bson:"_id"`
	OwnerID              string       `bson:"ownerId"`
	Name                 string       `bson:"name"`
	IdentificationNumber string       `bson:"identificationNumber"`
	Species              string       `bson:"species"`
	Breed                string       `bson:"breed"`
	BirthDate            *time.Time   `bson:"birthDate,omitempty"`
	Sex                  string       `bson:"sex"`
	Stage                string       `bson:"stage"`
	ForSale              bool         `bson:"forSale"`
	SalePrice            *string      `bson:"salePrice,omitempty"` // decimal como texto, sin pérdida
	SaleStatus           string       `bson:"saleStatus,omitempty"`
	BuyerID              string       `bson:"buyerId,omitempty"`
	Documents            documentsDoc `bson:"documents"`
	DocumentsComplete    bool         `bson:"documentsComplete"`
	MotherID             string       `bson:"motherId,omitempty"`
	CreatedAt            time.Time    `bson:"createdAt"`
	UpdatedAt            time.Time    `bson:"updatedAt"`
}

type AnimalsRepo struct {
	coll *mongo.Collection
}

func NewAnimalsRepo(db *mongo.Database) *AnimalsRepo {
	return &AnimalsRepo{coll: db.Collection(animalsCollection)}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.coll.InsertOne(ctx, toAnimalDoc(a))
	if mongo.IsDuplicateKeyError(err) {
		return animals.ErrDuplicateIdentification
	}
	return err
}

// UpdateSale reemplaza el documento solo si saleStatus sigue siendo from.
func (r *AnimalsRepo) UpdateSale(ctx context.Context, a animals.Animal, from animals.SaleStatus) error {
	res, err := r.coll.ReplaceOne(ctx, saleFilter(a.ID, from), toAnimalDoc(a))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return animals.ErrDuplicateIdentification
		}
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": a.ID})
	if err != nil {
		return err
	}
	if n == 0 {
		return animals.ErrNotFound
	}
	return animals.ErrSaleConflict
}

// saleFilter: saleStatus vacío no se escribe (omitempty), así que "" también es campo ausente.
func saleFilter(id string, from animals.SaleStatus) bson.M {
	if from == "" {
		return bson.M{"_id": id, "saleStatus": bson.M{"$in": bson.A{"", nil}}}
	}
	return bson.M{"_id": id, "saleStatus": string(from)}
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AnimalsRepo) FindByIdentification(ctx context.Context, ownerID, identificationNumber string) (animals.Animal, error) {
	return r.findOne(ctx, bson.M{"ownerId": ownerID, "identificationNumber": identificationNumber})
}

func (r *AnimalsRepo) ListByOwner(ctx context.Context, ownerID string) ([]animals.Animal, error) {
	return r.find(ctx, bson.M{"ownerId": ownerID})
}

func (r *AnimalsRepo) ListForSale(ctx context.Context) ([]animals.Animal, error) {
	return r.find(ctx, bson.M{"forSale": true, "saleStatus": string(animals.SaleStatusForSale)})
}

func (r *AnimalsRepo) findOne(ctx context.Context, filter bson.M) (animals.Animal, error) {
	var doc animalDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return fromAnimalDoc(doc)
}

func (r *AnimalsRepo) find(ctx context.Context, filter bson.M) ([]animals.Animal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []animalDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]animals.Animal, 0, len(docs))
	for _, d := range docs {
		a, err := fromAnimalDoc(d)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func toAnimalDoc(a animals.Animal) animalDoc {
	doc := animalDoc{
		ID:                   a.ID,
		OwnerID:              a.OwnerID,
		Name:                 a.Name,
		IdentificationNumber: a.IdentificationNumber,
		Species:              a.Species,
		Breed:                a.Breed,
		BirthDate:            a.BirthDate,
		Sex:                  string(a.Sex),
		Stage:                string(a.Stage),
		ForSale:              a.ForSale,
		SaleStatus:           string(a.SaleStatus),
		BuyerID:              a.BuyerID,
		Documents: documentsDoc{
			TransitPermit:       a.Documents.TransitPermit,
			SaleInvoice:         a.Documents.SaleInvoice,
			MovementCertificate: a.Documents.MovementCertificate,
			SanitaryCertificate: a.Documents.SanitaryCertificate,
			BrandPatent:         a.Documents.BrandPatent,
			Photo:               a.Documents.Photo,
		},
		DocumentsComplete: a.DocumentsComplete,
		MotherID:          a.MotherID,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	if a.SalePrice.Valid {
		s := a.SalePrice.Decimal.String()
		doc.SalePrice = &s
	}
	return doc
}

func fromAnimalDoc(d animalDoc) (animals.Animal, error) {
	a := animals.Animal{
		ID:                   d.ID,
		OwnerID:              d.OwnerID,
		Name:                 d.Name,
		IdentificationNumber: d.IdentificationNumber,
		Species:              d.Species,
		Breed:                d.Breed,
		BirthDate:            d.BirthDate,
		Sex:                  animals.Sex(d.Sex),
		Stage:                animals.Stage(d.Stage),
		ForSale:              d.ForSale,
		SaleStatus:           animals.SaleStatus(d.SaleStatus),
		BuyerID:              d.BuyerID,
		Documents: animals.Documents{
			TransitPermit:       d.Documents.TransitPermit,
			SaleInvoice:         d.Documents.SaleInvoice,
			MovementCertificate: d.Documents.MovementCertificate,
			SanitaryCertificate: d.Documents.SanitaryCertificate,
			BrandPatent:         d.Documents.BrandPatent,
			Photo:               d.Documents.Photo,
		},
		DocumentsComplete: d.DocumentsComplete,
		MotherID:          d.MotherID,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if d.SalePrice != nil {
		p, err := decimal.NewFromString(*d.SalePrice)
		if err != nil {
			return animals.Animal{}, err
		}
		a.SalePrice = decimal.NewNullDecimal(p)
	}
	return a, nil
}
