package application

import (
	"context"

	"github.com/ipede/freecourse-services/internal/domain"
	"go.uber.org/zap"
)

type CategoryService struct {
	categories domain.CategoryRepository
	logger     *zap.Logger
}

func NewCategoryService(categories domain.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     logger,
	}
}

// ListCategories returns every category, an empty slice when there are none
func (s *CategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	category := &domain.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("category created", zap.String("id", category.ID.Hex()))
	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}
