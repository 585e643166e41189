package domain

import (
	"errors"

	apperrors "github.com/ipede/freecourse-services/internal/domain/errors"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup key
	ErrUserNotFound = apperrors.NewNotFoundError("User not found")

	// ErrUserAlreadyExists is returned when the email is already registered
	ErrUserAlreadyExists = apperrors.NewConflictError("User already exists")

	// ErrCategoryNotFound is returned when no category matches the id
	ErrCategoryNotFound = apperrors.NewNotFoundError("Category not found")

	// ErrCourseNotFound is returned when no course matches the id or user id
	ErrCourseNotFound = apperrors.NewNotFoundError("Course not found")

	// ErrDatabaseQuery is returned when a store round-trip fails
	ErrDatabaseQuery = errors.New("database query failed")

	// ErrInvalidKeyConfig is returned when the signing key cannot be loaded or created
	ErrInvalidKeyConfig = errors.New("invalid key configuration")

	// ErrInternal is returned when there is an internal server error
	ErrInternal = errors.New("internal server error")
)

// NewDanglingCategoryError reports a course whose categoryId does not resolve
func NewDanglingCategoryError(courseID, categoryID string, err error) error {
	return apperrors.NewReferentialIntegrityError(
		"course "+courseID+" references missing category "+categoryID, err)
}
