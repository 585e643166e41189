package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ipede/freecourse-services/internal/domain"
	"github.com/ipede/freecourse-services/internal/interfaces/http/dto"
	httperrors "github.com/ipede/freecourse-services/internal/interfaces/http/errors"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"go.uber.org/zap"
)

// UserService is the account surface of the identity server
type UserService interface {
	SignUp(ctx context.Context, userName, email, password, city string) (*domain.User, error)
	GetUser(ctx context.Context, subject string) (*domain.User, error)
}

// TokenIssuer handles token endpoint requests
type TokenIssuer interface {
	IssueToken(r *http.Request) (map[string]interface{}, error)
	ErrorData(err error) (map[string]interface{}, int, http.Header)
}

// KeySource publishes the signing keys
type KeySource interface {
	JWKS() (jwk.Set, error)
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
}

type CourseService interface {
	ListCourses(ctx context.Context) ([]*domain.Course, error)
	GetCourse(ctx context.Context, id string) (*domain.Course, error)
	GetCourseByUserID(ctx context.Context, userID string) (*domain.Course, error)
	CreateCourse(ctx context.Context, course *domain.Course) (*domain.Course, error)
	UpdateCourse(ctx context.Context, course *domain.Course) error
	DeleteCourse(ctx context.Context, id string) error
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// decodeEnvelopeRequest decodes and validates a catalog request body. On
// failure it writes the 400 envelope and returns false.
func decodeEnvelopeRequest(w http.ResponseWriter, r *http.Request, req interface{}, logger *zap.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.Debug("Failed to decode request body", zap.Error(err))
		writeEnvelope(w, dto.Fail(http.StatusBadRequest, "Invalid request body"), logger)
		return false
	}
	if err := dto.Validate(req); err != nil {
		details := httperrors.ValidationDetails(err)
		messages := make([]string, 0, len(details))
		for _, d := range details {
			messages = append(messages, d.Message)
		}
		writeEnvelope(w, dto.Fail(http.StatusBadRequest, messages...), logger)
		return false
	}
	return true
}

// writeEnvelopeError maps err to its status and writes it as a failed envelope
func writeEnvelopeError(w http.ResponseWriter, err error, logger *zap.Logger) {
	status := httperrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Catalog request failed", zap.Error(err))
	}
	writeEnvelope(w, dto.Fail(status, httperrors.MessageOf(err)), logger)
}

func writeEnvelope[T any](w http.ResponseWriter, resp dto.Response[T], logger *zap.Logger) {
	if err := dto.Write(w, resp); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}
