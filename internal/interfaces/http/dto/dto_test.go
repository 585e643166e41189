package dto

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ipede/freecourse-services/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateCourseRequest_ToCourse(t *testing.T) {
	categoryID := primitive.NewObjectID()
	req := &CreateCourseRequest{
		Name:       "Go Basics",
		Price:      149.99,
		UserID:     "U1",
		CategoryID: categoryID.Hex(),
		Feature:    &FeatureDto{Duration: 30},
	}
	require.NoError(t, Validate(req))

	course, err := req.ToCourse()
	require.NoError(t, err)
	assert.Equal(t, categoryID, course.CategoryID)
	assert.Equal(t, "149.99", course.Price.String())
	assert.Equal(t, 30, course.Feature.Duration)
	assert.True(t, course.ID.IsZero())
}

func TestCreateCourseRequest_Validation(t *testing.T) {
	err := Validate(&CreateCourseRequest{Price: -1, CategoryID: "nope"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	assert.ElementsMatch(t, []string{"name", "price", "userId", "categoryId"}, fields)
}

func TestUpdateCourseRequest_ToCourse(t *testing.T) {
	id := primitive.NewObjectID()
	req := &UpdateCourseRequest{
		ID: id.Hex(),
		CreateCourseRequest: CreateCourseRequest{
			Name:       "Go",
			UserID:     "U1",
			CategoryID: primitive.NewObjectID().Hex(),
		},
	}
	require.NoError(t, Validate(req))

	course, err := req.ToCourse()
	require.NoError(t, err)
	assert.Equal(t, id, course.ID)

	req.ID = "garbage"
	_, err = req.ToCourse()
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestNewCourseDto(t *testing.T) {
	price, _ := primitive.ParseDecimal128("19.5")
	category := &domain.Category{ID: primitive.NewObjectID(), Name: "Programming"}
	course := &domain.Course{
		ID:          primitive.NewObjectID(),
		Name:        "Go",
		Price:       price,
		UserID:      "U1",
		CategoryID:  category.ID,
		CreatedTime: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Category:    category,
	}

	dto := NewCourseDto(course)
	assert.Equal(t, 19.5, dto.Price)
	assert.Equal(t, category.ID.Hex(), dto.CategoryID)
	require.NotNil(t, dto.Category)
	assert.Equal(t, "Programming", dto.Category.Name)
	assert.Nil(t, dto.Feature)

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"userId":"U1"`)
	assert.Contains(t, string(raw), `"createdTime":"2024-01-02T03:04:05Z"`)
}

func TestWriteEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, Write(w, Success([]*CategoryDto{}, http.StatusOK)))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, true, body["isSuccessful"])
	assert.EqualValues(t, 200, body["statusCode"])
	assert.Equal(t, []interface{}{}, body["data"])

	w = httptest.NewRecorder()
	require.NoError(t, Write(w, Fail(http.StatusNotFound, "Course not found")))
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, false, body["isSuccessful"])
	assert.Equal(t, []interface{}{"Course not found"}, body["errors"])

	w = httptest.NewRecorder()
	require.NoError(t, Write(w, Success(&NoContent{}, http.StatusNoContent)))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestSignUpRequest_Validation(t *testing.T) {
	assert.NoError(t, Validate(&SignUpRequest{UserName: "a", Email: "a@b.co", Password: "secret1", City: "X"}))
	assert.Error(t, Validate(&SignUpRequest{UserName: "a", Email: "bad", Password: "secret1", City: "X"}))
	assert.Error(t, Validate(&SignUpRequest{UserName: "a", Email: "a@b.co", Password: "123", City: "X"}))
}
