package application

import (
	"context"
	"errors"
	"strings"

	"github.com/ipede/freecourse-services/internal/domain"
	"github.com/ipede/freecourse-services/internal/infrastructure/password"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo domain.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo domain.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// SignUp registers a new user with a bcrypt-hashed password
func (s *UserService) SignUp(ctx context.Context, userName, email, passwordStr, city string) (*domain.User, error) {
	email = strings.TrimSpace(email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := password.HashPassword(passwordStr)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, domain.ErrInternal
	}

	user := domain.NewUser(userName, email, hashedPassword, city)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, err
		}
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

// GetUser retrieves a user by the token subject
func (s *UserService) GetUser(ctx context.Context, subject string) (*domain.User, error) {
	id, err := domain.ParseULID(subject)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return s.userRepo.FindByID(ctx, id)
}
