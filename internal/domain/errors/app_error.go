package apperrors

import "errors"

// AppError represents an application error
// @Description An application error with a message and optional details
type AppError struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code"`
	cause   error
}

// Error types
const (
	ValidationError           = "VALIDATION_ERROR"
	UnauthorizedError         = "UNAUTHORIZED_ERROR"
	NotFoundError             = "NOT_FOUND_ERROR"
	ConflictError             = "CONFLICT_ERROR"
	ReferentialIntegrityError = "REFERENTIAL_INTEGRITY_ERROR"
	InternalError             = "INTERNAL_ERROR"
)

// Error returns the error message
func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is reports whether target is an AppError with the same code and message.
// It lets sentinel AppErrors be matched with errors.Is after wrapping.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{Message: message, Code: ValidationError}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Message: message, Code: UnauthorizedError}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{Message: message, Code: NotFoundError}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *AppError {
	return &AppError{Message: message, Code: ConflictError}
}

// NewReferentialIntegrityError creates an error for a stored reference that
// does not resolve to an existing record
func NewReferentialIntegrityError(message string, err error) *AppError {
	appErr := &AppError{Message: message, Code: ReferentialIntegrityError, cause: err}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	appErr := &AppError{Message: message, Code: InternalError, cause: err}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// CodeOf returns the code of the first AppError in err's chain, or
// InternalError when there is none
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalError
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return err != nil && CodeOf(err) == ValidationError
}

// IsUnauthorizedError checks if the error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	return err != nil && CodeOf(err) == UnauthorizedError
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return err != nil && CodeOf(err) == NotFoundError
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return err != nil && CodeOf(err) == ConflictError
}

// IsReferentialIntegrityError checks if the error is a dangling reference error
func IsReferentialIntegrityError(err error) bool {
	return err != nil && CodeOf(err) == ReferentialIntegrityError
}

// IsInternalError checks if the error is an internal error
func IsInternalError(err error) bool {
	return err != nil && CodeOf(err) == InternalError
}
