package dto

import (
	"time"

	"github.com/ipede/freecourse-services/internal/domain"
)

type SignUpRequest struct {
	UserName string `json:"userName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	City     string `json:"city" validate:"required"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserResponse(user *domain.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID.String(),
		UserName:  user.UserName,
		Email:     user.Email,
		City:      user.City,
		CreatedAt: user.CreatedAt,
	}
}
