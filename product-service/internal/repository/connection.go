package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMaxPoolSize = 50

type Credentials struct {
	URI         string
	Database    string
	MaxPoolSize uint64
}

// Connect dials the catalog database, checks it answers and makes sure the
// products collection is indexed. The client is disconnected on any failure.
func Connect(ctx context.Context, cred Credentials) (*MongoRepository, error) {
	if cred.Database == "" {
		return nil, errors.New("mongodb database name is required")
	}
	poolSize := cred.MaxPoolSize
	if poolSize == 0 {
		poolSize = defaultMaxPoolSize
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cred.URI).
		SetConnectTimeout(10*time.Second).
		SetServerSelectionTimeout(5*time.Second).
		SetMaxPoolSize(poolSize))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	repo := NewMongoRepository(client.Database(cred.Database))
	if err := repo.CreateIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return repo, nil
}
