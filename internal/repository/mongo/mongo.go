// Package mongo implements the repository interfaces on top of a
// MongoDB database. Collections: products, rent_requests, users.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rentmarket-backend/internal/repository"
)

// Store bundles all repositories backed by one database handle.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	repository.ProductRepository
	repository.RentRequestRepository
	repository.UserRepository
}

// Connect dials the MongoDB server and returns a Store over the named
// database. The caller owns the lifetime and must call Close.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(database)
	return NewStore(client, db), nil
}

func NewStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		client:                client,
		db:                    db,
		ProductRepository:     NewProductRepository(db),
		RentRequestRepository: NewRentRequestRepository(db),
		UserRepository:        NewUserRepository(db),
	}
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
