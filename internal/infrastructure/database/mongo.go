package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ipede/freecourse-services/internal/infrastructure/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Mongo represents a MongoDB client bound to the catalog database
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    *config.Config
	log    *zap.Logger
}

// NewMongo connects to MongoDB and verifies the connection
func NewMongo(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("error pinging mongodb: %w", err)
	}

	log.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	return &Mongo{
		client: client,
		db:     client.Database(cfg.MongoDatabase),
		cfg:    cfg,
		log:    log,
	}, nil
}

// DB returns the catalog database
func (m *Mongo) DB() *mongo.Database {
	return m.db
}

// EnsureIndexes creates the course lookup indexes used by the catalog
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	courses := m.db.Collection(m.cfg.CourseCollection)
	_, err := courses.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
	})
	if err != nil {
		m.log.Error("failed to create course indexes", zap.Error(err))
		return fmt.Errorf("error creating indexes: %w", err)
	}
	return nil
}

// Ping checks if the connection is alive
func (m *Mongo) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Ping(ctx, nil)
}

// Close disconnects the client
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
