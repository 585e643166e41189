package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ipede/freecourse-services/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

type CourseHandler struct {
	service CourseService
	logger  *zap.Logger
}

func NewCourseHandler(service CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary List courses with their category
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response[[]dto.CourseDto]
// @Failure 500 {object} dto.Response[dto.NoContent]
// @Router /api/courses [get]
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		writeEnvelopeError(w, err, h.logger)
		return
	}
	writeEnvelope(w, dto.Success(dto.NewCourseDtos(courses), http.StatusOK), h.logger)
}

// Get godoc
// @Summary Get a course with its category
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course id"
// @Success 200 {object} dto.Response[dto.CourseDto]
// @Failure 404 {object} dto.Response[dto.NoContent]
// @Router /api/courses/{id} [get]
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.GetCourse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeEnvelopeError(w, err, h.logger)
		return
	}
	writeEnvelope(w, dto.Success(dto.NewCourseDto(course), http.StatusOK), h.logger)
}

// GetByUserID godoc
// @Summary Get the first course of a user
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Owner id"
// @Success 200 {object} dto.Response[dto.CourseDto]
// @Failure 404 {object} dto.Response[dto.NoContent]
// @Router /api/courses/user/{userId} [get]
func (h *CourseHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.GetCourseByUserID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeEnvelopeError(w, err, h.logger)
		return
	}
	writeEnvelope(w, dto.Success(dto.NewCourseDto(course), http.StatusOK), h.logger)
}

// Create godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course body dto.CreateCourseRequest true "Course"
// @Success 200 {object} dto.Response[dto.CourseDto]
// @Failure 400 {object} dto.Response[dto.NoContent]
// @Router /api/courses [post]
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCourseRequest
	if !decodeEnvelopeRequest(w, r, &req, h.logger) {
		return
	}

	course, err := req.ToCourse()
	if err != nil {
		writeEnvelope(w, dto.Fail(http.StatusBadRequest, err.Error()), h.logger)
		return
	}

	created, err := h.service.CreateCourse(r.Context(), course)
	if err != nil {
		writeEnvelopeError(w, err, h.logger)
		return
	}
	writeEnvelope(w, dto.Success(dto.NewCourseDto(created), http.StatusOK), h.logger)
}

// Update godoc
// @Summary Update a course
// @Tags courses
// @Accept json
// @Security BearerAuth
// @Param course body dto.UpdateCourseRequest true "Course"
// @Success 204
// @Failure 404 {object} dto.Response[dto.NoContent]
// @Router /api/courses [put]
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCourseRequest
	if !decodeEnvelopeRequest(w, r, &req, h.logger) {
		return
	}

	course, err := req.ToCourse()
	if err != nil {
		writeEnvelopeError(w, err, h.logger)
		return
	}

	if err := h.service.UpdateCourse(r.Context(), course); err != nil {
		writeEnvelopeError(w, err, h.logger)
		return
	}
	writeEnvelope(w, dto.Success(&dto.NoContent{}, http.StatusNoContent), h.logger)
}

// Delete godoc
// @Summary Delete a course
// @Tags courses
// @Security BearerAuth
// @Param id path string true "Course id"
// @Success 204
// @Failure 404 {object} dto.Response[dto.NoContent]
// @Router /api/courses/{id} [delete]
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCourse(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeEnvelopeError(w, err, h.logger)
		return
	}
	writeEnvelope(w, dto.Success(&dto.NoContent{}, http.StatusNoContent), h.logger)
}
