package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ipede/freecourse-services/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type CourseRepository struct {
	logger     *zap.Logger
	collection *mongo.Collection
}

func NewCourseRepository(db *mongo.Database, collection string, logger *zap.Logger) *CourseRepository {
	return &CourseRepository{
		logger:     logger,
		collection: db.Collection(collection),
	}
}

func (r *CourseRepository) List(ctx context.Context) ([]*domain.Course, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Error("failed to list courses", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabaseQuery, err)
	}

	courses := make([]*domain.Course, 0)
	if err := cursor.All(ctx, &courses); err != nil {
		r.logger.Error("failed to decode courses", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabaseQuery, err)
	}
	return courses, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindFirstByUserID returns the first course in natural order owned by userID
func (r *CourseRepository) FindFirstByUserID(ctx context.Context, userID string) (*domain.Course, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, course); err != nil {
		r.logger.Error("failed to insert course", zap.String("name", course.Name), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrDatabaseQuery, err)
	}
	return nil
}

// Update replaces the content fields of the stored course in one round-trip.
// created_time is left as stored and copied back into course.
func (r *CourseRepository) Update(ctx context.Context, course *domain.Course) error {
	update := bson.M{"$set": bson.M{
		"name":        course.Name,
		"description": course.Description,
		"price":       course.Price,
		"picture":     course.Picture,
		"user_id":     course.UserID,
		"category_id": course.CategoryID,
		"feature":     course.Feature,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Course
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": course.ID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrCourseNotFound
		}
		r.logger.Error("failed to update course", zap.String("id", course.ID.Hex()), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrDatabaseQuery, err)
	}

	course.CreatedTime = updated.CreatedTime
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCourseNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("failed to delete course", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrDatabaseQuery, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) findOne(ctx context.Context, filter bson.M) (*domain.Course, error) {
	var course domain.Course
	err := r.collection.FindOne(ctx, filter).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		r.logger.Error("failed to find course", zap.Any("filter", filter), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabaseQuery, err)
	}
	return &course, nil
}
