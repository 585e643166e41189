package application

import (
	"context"
	"sync"

	"github.com/ipede/freecourse-services/internal/domain"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id ulid.ULID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockCredentialStore) VerifyPassword(user *domain.User, password string) bool {
	args := m.Called(user, password)
	return args.Bool(0)
}

// memoryCategories is an in-memory domain.CategoryRepository
type memoryCategories struct {
	mu      sync.Mutex
	records map[primitive.ObjectID]domain.Category
	lookups int
}

func newMemoryCategories() *memoryCategories {
	return &memoryCategories{records: make(map[primitive.ObjectID]domain.Category)}
}

func (r *memoryCategories) List(context.Context) ([]*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Category, 0, len(r.records))
	for _, c := range r.records {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

func (r *memoryCategories) Create(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	r.records[category.ID] = *category
	return nil
}

func (r *memoryCategories) FindByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	c, ok := r.records[oid]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

// memoryCourses is an in-memory domain.CourseRepository keeping insertion order
type memoryCourses struct {
	mu      sync.Mutex
	order   []primitive.ObjectID
	records map[primitive.ObjectID]domain.Course
}

func newMemoryCourses() *memoryCourses {
	return &memoryCourses{records: make(map[primitive.ObjectID]domain.Course)}
}

func (r *memoryCourses) List(context.Context) ([]*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Course, 0, len(r.order))
	for _, id := range r.order {
		c := r.records[id]
		out = append(out, &c)
	}
	return out, nil
}

func (r *memoryCourses) FindByID(_ context.Context, id string) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}
	c, ok := r.records[oid]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return &c, nil
}

func (r *memoryCourses) FindFirstByUserID(_ context.Context, userID string) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if c := r.records[id]; c.UserID == userID {
			return &c, nil
		}
	}
	return nil, domain.ErrCourseNotFound
}

func (r *memoryCourses) Create(_ context.Context, course *domain.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	stored := *course
	stored.Category = nil
	r.records[course.ID] = stored
	r.order = append(r.order, course.ID)
	return nil
}

func (r *memoryCourses) Update(_ context.Context, course *domain.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.records[course.ID]
	if !ok {
		return domain.ErrCourseNotFound
	}
	stored := *course
	stored.Category = nil
	stored.CreatedTime = existing.CreatedTime
	r.records[course.ID] = stored
	course.CreatedTime = existing.CreatedTime
	return nil
}

func (r *memoryCourses) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCourseNotFound
	}
	if _, ok := r.records[oid]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.records, oid)
	for i, existing := range r.order {
		if existing == oid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type countingFaults struct {
	count int
}

func (f *countingFaults) RecordReferentialFault() { f.count++ }
