package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ipede/freecourse-services/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type CategoryRepository struct {
	logger     *zap.Logger
	collection *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database, collection string, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		logger:     logger,
		collection: db.Collection(collection),
	}
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Error("failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabaseQuery, err)
	}

	categories := make([]*domain.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		r.logger.Error("failed to decode categories", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabaseQuery, err)
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, category); err != nil {
		r.logger.Error("failed to insert category", zap.String("name", category.Name), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrDatabaseQuery, err)
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	var category domain.Category
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		r.logger.Error("failed to find category", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabaseQuery, err)
	}
	return &category, nil
}
