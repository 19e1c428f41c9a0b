package db

import (
	"context"
	"fmt"
	"time"

	"github.com/dsjohal14/arcadeboard/internal/scope/scores"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultMongoDatabase is used when no database name is configured
const DefaultMongoDatabase = "pacman_leaderboard_db"

// leaderboardSort matches scores.Compare
var leaderboardSort = bson.D{
	{Key: "score", Value: -1},
	{Key: "date_achieved", Value: 1},
	{Key: "_id", Value: 1},
}

// MongoStore stores entries as documents in a MongoDB collection
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo connects to MongoDB and prepares the score collection
func OpenMongo(ctx context.Context, uri, database string, logger zerolog.Logger) (*MongoStore, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Test connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(CollectionName),
	}

	// A missing index only slows the leaderboard query down
	if name, err := s.ensureIndex(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to create leaderboard index")
	} else {
		logger.Debug().Str("index", name).Msg("leaderboard index ready")
	}

	return s, nil
}

func (s *MongoStore) ensureIndex(ctx context.Context) (string, error) {
	return s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "score", Value: -1}, {Key: "date_achieved", Value: 1}},
		Options: options.Index().SetName("leaderboard_index"),
	})
}

// Insert writes one document
func (s *MongoStore) Insert(ctx context.Context, entry scores.Entry) error {
	if _, err := s.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}
	return nil
}

// Top returns up to limit entries in leaderboard order
func (s *MongoStore) Top(ctx context.Context, limit int) ([]scores.Entry, error) {
	opts := options.Find().SetSort(leaderboardSort).SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	entries := make([]scores.Entry, 0, max(limit, 0))
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}
	return entries, nil
}

// Kind returns "mongodb"
func (s *MongoStore) Kind() string { return "mongodb" }

// Close disconnects the client
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
