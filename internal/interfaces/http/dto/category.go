package dto

import "github.com/ipede/freecourse-services/internal/domain"

type CategoryDto struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

func NewCategoryDto(category *domain.Category) *CategoryDto {
	if category == nil {
		return nil
	}
	return &CategoryDto{
		ID:   category.ID.Hex(),
		Name: category.Name,
	}
}

func NewCategoryDtos(categories []*domain.Category) []*CategoryDto {
	out := make([]*CategoryDto, 0, len(categories))
	for _, c := range categories {
		out = append(out, NewCategoryDto(c))
	}
	return out
}
