package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ipede/freecourse-services/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	service CategoryService
	logger  *zap.Logger
}

func NewCategoryHandler(service CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response[[]dto.CategoryDto]
// @Router /api/categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeEnvelopeError(w, err, h.logger)
		return
	}
	writeEnvelope(w, dto.Success(dto.NewCategoryDtos(categories), http.StatusOK), h.logger)
}

// Get godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category id"
// @Success 200 {object} dto.Response[dto.CategoryDto]
// @Failure 404 {object} dto.Response[dto.NoContent]
// @Router /api/categories/{id} [get]
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeEnvelopeError(w, err, h.logger)
		return
	}
	writeEnvelope(w, dto.Success(dto.NewCategoryDto(category), http.StatusOK), h.logger)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body dto.CreateCategoryRequest true "Category"
// @Success 200 {object} dto.Response[dto.CategoryDto]
// @Failure 400 {object} dto.Response[dto.NoContent]
// @Router /api/categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if !decodeEnvelopeRequest(w, r, &req, h.logger) {
		return
	}

	category, err := h.service.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeEnvelopeError(w, err, h.logger)
		return
	}
	writeEnvelope(w, dto.Success(dto.NewCategoryDto(category), http.StatusOK), h.logger)
}
