package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ipede/freecourse-services/internal/domain"
	"github.com/ipede/freecourse-services/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

type UserRepository struct {
	logger *zap.Logger
	db     *database.Postgres
}

func NewUserRepository(db *database.Postgres, logger *zap.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.Exec(ctx, `
		INSERT INTO users (id, user_name, email, password, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID.String(), user.UserName, user.Email, user.Password, user.City, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("%w: %v", domain.ErrDatabaseQuery, err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id ulid.ULID) (*domain.User, error) {
	return r.findOne(ctx, "id = $1", id.String())
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "LOWER(email) = LOWER($1)", email)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER($1)", email).Scan(&count)
	if err != nil {
		r.logger.Error("failed to check if user exists", zap.Error(err))
		return false, fmt.Errorf("%w: %v", domain.ErrDatabaseQuery, err)
	}
	return count > 0, nil
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	var (
		user domain.User
		id   string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, user_name, email, password, city, created_at, updated_at
		FROM users WHERE `+where, arg,
	).Scan(&id, &user.UserName, &user.Email, &user.Password, &user.City, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("failed to find user", zap.String("where", where), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabaseQuery, err)
	}

	user.ID, err = domain.ParseULID(id)
	if err != nil {
		r.logger.Error("stored user id is not a ULID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabaseQuery, err)
	}
	return &user, nil
}
