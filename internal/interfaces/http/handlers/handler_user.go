package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ipede/freecourse-services/internal/domain"
	apperrors "github.com/ipede/freecourse-services/internal/domain/errors"
	"github.com/ipede/freecourse-services/internal/interfaces/http/dto"
	httperrors "github.com/ipede/freecourse-services/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user accounts
type UserHandler struct {
	service UserService
	logger  *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// SignUp godoc
// @Summary Register a new user
// @Description Register a new user with the provided details
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.SignUpRequest true "User registration details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} httperrors.ErrorResponse
// @Failure 409 {object} httperrors.ErrorResponse
// @Failure 500 {object} httperrors.ErrorResponse
// @Router /api/user/signup [post]
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Failed to decode request body", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInvalidRequest, "Invalid request body", nil, http.StatusBadRequest)
		return
	}
	if err := dto.Validate(&req); err != nil {
		httperrors.RespondWithError(w, apperrors.ValidationError, "Validation failed", httperrors.ValidationDetails(err), http.StatusBadRequest)
		return
	}

	user, err := h.service.SignUp(r.Context(), req.UserName, req.Email, req.Password, req.City)
	if err != nil {
		if httperrors.StatusOf(err) >= http.StatusInternalServerError {
			h.logger.Error("Failed to register user", zap.Error(err))
		}
		httperrors.RespondWithAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.NewUserResponse(user), h.logger)
}

// GetCurrentUser godoc
// @Summary Get current user
// @Description Get the profile of the token subject
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} httperrors.ErrorResponse
// @Failure 404 {object} httperrors.ErrorResponse
// @Router /api/user [get]
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	subject, ok := domain.SubjectFromContext(r.Context())
	if !ok {
		httperrors.RespondWithError(w, apperrors.UnauthorizedError, "User not authenticated", nil, http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetUser(r.Context(), subject)
	if err != nil {
		if httperrors.StatusOf(err) >= http.StatusInternalServerError {
			h.logger.Error("Failed to get user", zap.Error(err))
		}
		httperrors.RespondWithAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewUserResponse(user), h.logger)
}
