package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	animalsCollection      = "animals"
	vaccinationsCollection = "vaccinations"
	weightsCollection      = "weights"
)

// Connect abre el cliente y verifica la conexión con un ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea los índices que usan los repos. Es idempotente.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	models := map[string][]mongo.IndexModel{
		animalsCollection: {
			{Keys: bson.D{{Key: "ownerId", Value: 1}}},
			{Keys: bson.D{{Key: "saleStatus", Value: 1}}},
			{
				Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "identificationNumber", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"identificationNumber": bson.M{"$gt": ""}}),
			},
		},
		vaccinationsCollection: {
			{Keys: bson.D{{Key: "animalId", Value: 1}, {Key: "applicationDate", Value: -1}}},
			{Keys: bson.D{{Key: "ownerId", Value: 1}}},
		},
		weightsCollection: {
			{Keys: bson.D{{Key: "animalId", Value: 1}, {Key: "recordedDate", Value: -1}}},
			{Keys: bson.D{{Key: "ownerId", Value: 1}}},
		},
	}

	for coll, idx := range models {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("indexes %s: %w", coll, err)
		}
	}
	return nil
}
