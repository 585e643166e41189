package application

import (
	"context"
	"errors"

	"github.com/ipede/freecourse-services/internal/domain"
	"go.uber.org/zap"
)

// ResourceOwnerPasswordValidator checks username/password pairs for the
// password grant
type ResourceOwnerPasswordValidator struct {
	credentials domain.CredentialStore
	logger      *zap.Logger
}

func NewResourceOwnerPasswordValidator(credentials domain.CredentialStore, logger *zap.Logger) *ResourceOwnerPasswordValidator {
	return &ResourceOwnerPasswordValidator{
		credentials: credentials,
		logger:      logger,
	}
}

// Validate looks the user up by email and verifies the password. An unknown
// email and a wrong password yield the same rejection. Store failures are
// returned as errors.
func (v *ResourceOwnerPasswordValidator) Validate(ctx context.Context, username, password string) (domain.GrantResult, error) {
	user, err := v.credentials.FindByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Rejected(domain.MsgInvalidEmailOrPassword), nil
		}
		v.logger.Error("credential lookup failed", zap.Error(err))
		return domain.GrantResult{}, err
	}

	if !v.credentials.VerifyPassword(user, password) {
		return domain.Rejected(domain.MsgInvalidEmailOrPassword), nil
	}

	return domain.Authenticated(user.ID.String(), domain.AuthMethodPassword), nil
}
