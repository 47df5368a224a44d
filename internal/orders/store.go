// Package orders persists completed order records to the document store.
package orders

import (
	"context"
	"fmt"

	"github.com/01moynul/suburbia-storefront/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the document collection holding order records.
const CollectionName = "orders"

// Store writes order records. Records are insert-only.
type Store interface {
	Insert(ctx context.Context, rec models.OrderRecord) error
}

// Connector opens a fresh document-store client.
type Connector func(ctx context.Context) (*mongo.Client, error)

// MongoStore opens its own connection for every insert and releases it when
// the attempt finishes, whether or not the write succeeded.
type MongoStore struct {
	connect  Connector
	database string
}

func NewMongoStore(connect Connector, database string) *MongoStore {
	return &MongoStore{connect: connect, database: database}
}

func (s *MongoStore) Insert(ctx context.Context, rec models.OrderRecord) error {
	client, err := s.connect(ctx)
	if err != nil {
		return fmt.Errorf("connect order store: %w", err)
	}
	defer func() {
		_ = client.Disconnect(context.WithoutCancel(ctx))
	}()

	if _, err := client.Database(s.database).Collection(CollectionName).InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert order record: %w", err)
	}
	return nil
}
