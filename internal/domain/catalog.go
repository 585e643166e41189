package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups courses
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// Feature holds optional course attributes
type Feature struct {
	Duration int `bson:"duration"`
}

// Course is a catalog entry owned by a user and filed under one category.
// Category is resolved per request from CategoryID and is never stored.
type Course struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	Picture     string               `bson:"picture"`
	UserID      string               `bson:"user_id"`
	CategoryID  primitive.ObjectID   `bson:"category_id"`
	Feature     *Feature             `bson:"feature,omitempty"`
	CreatedTime time.Time            `bson:"created_time"`

	Category *Category `bson:"-"`
}

// CategoryRepository is the category collection
type CategoryRepository interface {
	List(ctx context.Context) ([]*Category, error)
	Create(ctx context.Context, category *Category) error
	// FindByID returns ErrCategoryNotFound when no record matches
	FindByID(ctx context.Context, id string) (*Category, error)
}

// CourseRepository is the course collection
type CourseRepository interface {
	List(ctx context.Context) ([]*Course, error)
	// FindByID returns ErrCourseNotFound when no record matches
	FindByID(ctx context.Context, id string) (*Course, error)
	// FindFirstByUserID returns ErrCourseNotFound when the user has no course
	FindFirstByUserID(ctx context.Context, userID string) (*Course, error)
	Create(ctx context.Context, course *Course) error
	// Update modifies the stored course atomically; ErrCourseNotFound when absent
	Update(ctx context.Context, course *Course) error
	// Delete returns ErrCourseNotFound when nothing was removed
	Delete(ctx context.Context, id string) error
}
