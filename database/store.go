package database

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	apperrors "github.com/phillip/ngo-portal-go/apperrors"
)

// Store owns the process-wide MongoDB handle. The first caller connects;
// everyone after gets the cached handle. A failed attempt is not cached.
type Store struct {
	uri    string
	dbName string

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

func NewStore(uri, dbName string) *Store {
	return &Store{uri: uri, dbName: dbName}
}

// Database returns the connected database, dialing on first use.
func (s *Store) Database(ctx context.Context) (*mongo.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return nil, &apperrors.ConnectionError{Err: err}
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, &apperrors.ConnectionError{Err: err}
	}

	db := client.Database(s.dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, &apperrors.ConnectionError{Err: err}
	}

	log.Printf("connected to MongoDB database %q", s.dbName)
	s.client, s.db = client, db
	return db, nil
}

// Disconnect closes the cached client, if any.
func (s *Store) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client, s.db = nil, nil
	return err
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CampaignsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("slug_unique"),
	})
	if err != nil {
		return fmt.Errorf("create campaigns.slug index: %w", err)
	}
	_, err = db.Collection(EventRegistrationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "eventId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create eventregistrations.eventId index: %w", err)
	}
	return nil
}
