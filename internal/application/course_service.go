package application

import (
	"context"
	"errors"
	"time"

	"github.com/ipede/freecourse-services/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// FaultRecorder counts courses whose category could not be resolved
type FaultRecorder interface {
	RecordReferentialFault()
}

type CourseService struct {
	courses    domain.CourseRepository
	categories domain.CategoryRepository
	faults     FaultRecorder
	logger     *zap.Logger
	now        func() time.Time
}

func NewCourseService(
	courses domain.CourseRepository,
	categories domain.CategoryRepository,
	faults FaultRecorder,
	logger *zap.Logger,
) *CourseService {
	return &CourseService{
		courses:    courses,
		categories: categories,
		faults:     faults,
		logger:     logger,
		now:        time.Now,
	}
}

// ListCourses returns every course with its category attached. Each distinct
// category is read once per call.
func (s *CourseService) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}

	resolved := make(map[primitive.ObjectID]*domain.Category)
	for _, course := range courses {
		category, ok := resolved[course.CategoryID]
		if !ok {
			category, err = s.resolveCategory(ctx, course)
			if err != nil {
				return nil, err
			}
			resolved[course.CategoryID] = category
		}
		course.Category = category
	}

	if courses == nil {
		courses = []*domain.Course{}
	}
	return courses, nil
}

func (s *CourseService) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withCategory(ctx, course)
}

// GetCourseByUserID returns the first course owned by userID
func (s *CourseService) GetCourseByUserID(ctx context.Context, userID string) (*domain.Course, error) {
	course, err := s.courses.FindFirstByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withCategory(ctx, course)
}

// CreateCourse stamps the creation time and stores the course. The category
// is not resolved.
func (s *CourseService) CreateCourse(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	course.ID = primitive.NilObjectID
	course.CreatedTime = ceilMillis(s.now().UTC())
	course.Category = nil

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info("course created", zap.String("id", course.ID.Hex()), zap.String("user_id", course.UserID))
	return course, nil
}

func (s *CourseService) UpdateCourse(ctx context.Context, course *domain.Course) error {
	return s.courses.Update(ctx, course)
}

func (s *CourseService) DeleteCourse(ctx context.Context, id string) error {
	return s.courses.Delete(ctx, id)
}

func (s *CourseService) withCategory(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	category, err := s.resolveCategory(ctx, course)
	if err != nil {
		return nil, err
	}
	course.Category = category
	return course, nil
}

func (s *CourseService) resolveCategory(ctx context.Context, course *domain.Course) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, course.CategoryID.Hex())
	if err == nil {
		return category, nil
	}
	if errors.Is(err, domain.ErrCategoryNotFound) {
		s.logger.Error("course references missing category",
			zap.String("course_id", course.ID.Hex()),
			zap.String("category_id", course.CategoryID.Hex()),
		)
		if s.faults != nil {
			s.faults.RecordReferentialFault()
		}
		return nil, domain.NewDanglingCategoryError(course.ID.Hex(), course.CategoryID.Hex(), err)
	}
	return nil, err
}

// ceilMillis rounds t up to BSON datetime precision so the stored value never
// precedes t.
func ceilMillis(t time.Time) time.Time {
	truncated := t.Truncate(time.Millisecond)
	if truncated.Before(t) {
		return truncated.Add(time.Millisecond)
	}
	return truncated
}
