package dto

import (
	"strconv"
	"time"

	"github.com/ipede/freecourse-services/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FeatureDto struct {
	Duration int `json:"duration" validate:"gte=0"`
}

type CourseDto struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Picture     string       `json:"picture"`
	UserID      string       `json:"userId"`
	CategoryID  string       `json:"categoryId"`
	Feature     *FeatureDto  `json:"feature,omitempty"`
	CreatedTime time.Time    `json:"createdTime"`
	Category    *CategoryDto `json:"category,omitempty"`
}

type CreateCourseRequest struct {
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description"`
	Price       float64     `json:"price" validate:"gte=0"`
	Picture     string      `json:"picture"`
	UserID      string      `json:"userId" validate:"required"`
	CategoryID  string      `json:"categoryId" validate:"required,mongodb"`
	Feature     *FeatureDto `json:"feature"`
}

type UpdateCourseRequest struct {
	ID string `json:"id" validate:"required"`
	CreateCourseRequest
}

func NewCourseDto(course *domain.Course) *CourseDto {
	dto := &CourseDto{
		ID:          course.ID.Hex(),
		Name:        course.Name,
		Description: course.Description,
		Price:       priceToFloat(course.Price),
		Picture:     course.Picture,
		UserID:      course.UserID,
		CategoryID:  course.CategoryID.Hex(),
		CreatedTime: course.CreatedTime,
		Category:    NewCategoryDto(course.Category),
	}
	if course.Feature != nil {
		dto.Feature = &FeatureDto{Duration: course.Feature.Duration}
	}
	return dto
}

func NewCourseDtos(courses []*domain.Course) []*CourseDto {
	out := make([]*CourseDto, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseDto(c))
	}
	return out
}

// ToCourse converts the request to a domain course. Validate must have
// accepted req first.
func (req *CreateCourseRequest) ToCourse() (*domain.Course, error) {
	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		return nil, err
	}
	price, err := priceFromFloat(req.Price)
	if err != nil {
		return nil, err
	}

	course := &domain.Course{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Picture:     req.Picture,
		UserID:      req.UserID,
		CategoryID:  categoryID,
	}
	if req.Feature != nil {
		course.Feature = &domain.Feature{Duration: req.Feature.Duration}
	}
	return course, nil
}

// ToCourse converts the request to a domain course. A malformed id yields
// domain.ErrCourseNotFound.
func (req *UpdateCourseRequest) ToCourse() (*domain.Course, error) {
	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}
	course, err := req.CreateCourseRequest.ToCourse()
	if err != nil {
		return nil, err
	}
	course.ID = id
	return course, nil
}

func priceToFloat(d primitive.Decimal128) float64 {
	f, err := strconv.ParseFloat(d.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

func priceFromFloat(f float64) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(strconv.FormatFloat(f, 'f', -1, 64))
}
