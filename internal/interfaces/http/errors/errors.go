package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/ipede/freecourse-services/internal/domain/errors"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail represents a validation error detail
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error codes not backed by an AppError
const (
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeRateLimited    = "RATE_LIMITED"
)

// MsgInternal is returned in place of messages of unexpected errors
const MsgInternal = "An unexpected error occurred"

// RespondWithError sends a standardized error response
func RespondWithError(w http.ResponseWriter, code string, message string, details []ErrorDetail, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// RespondWithAppError maps err to its status and writes an ErrorResponse
func RespondWithAppError(w http.ResponseWriter, err error) {
	RespondWithError(w, apperrors.CodeOf(err), MessageOf(err), nil, StatusOf(err))
}

// StatusOf returns the HTTP status for err
func StatusOf(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.ValidationError:
		return http.StatusBadRequest
	case apperrors.UnauthorizedError:
		return http.StatusUnauthorized
	case apperrors.NotFoundError:
		return http.StatusNotFound
	case apperrors.ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// MessageOf returns the client-facing message for err. Errors without an
// AppError in their chain, and internal errors, get MsgInternal.
func MessageOf(err error) string {
	var appErr *apperrors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code == apperrors.InternalError {
		return MsgInternal
	}
	return appErr.Message
}

// ValidationDetails converts validator errors to error details
func ValidationDetails(err error) []ErrorDetail {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return []ErrorDetail{{Message: err.Error()}}
	}

	details := make([]ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, ErrorDetail{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "gte":
		return field + " must be greater than or equal to " + fe.Param()
	case "mongodb":
		return field + " must be a valid id"
	default:
		return field + " is invalid (" + strings.TrimSpace(fe.Tag()) + ")"
	}
}
