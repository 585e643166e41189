package oauth

import (
	"context"

	"github.com/go-oauth2/oauth2/v4"
	oauth2errors "github.com/go-oauth2/oauth2/v4/errors"
	"github.com/ipede/freecourse-services/internal/domain"
)

// clientStore serves registry clients to the go-oauth2 manager
type clientStore struct {
	registry *domain.Registry
}

func (s *clientStore) GetByID(_ context.Context, id string) (oauth2.ClientInfo, error) {
	client, ok := s.registry.Client(id)
	if !ok {
		return nil, oauth2errors.ErrInvalidClient
	}
	return &clientInfo{client: client}, nil
}

// clientInfo implements oauth2.ClientInfo and oauth2.ClientPasswordVerifier.
// Only secret hashes are held, so GetSecret is always empty and the manager
// falls back to VerifyPassword.
type clientInfo struct {
	client *domain.OAuth2Client
}

func (c *clientInfo) GetID() string     { return c.client.ID }
func (c *clientInfo) GetSecret() string { return "" }
func (c *clientInfo) GetDomain() string { return "" }
func (c *clientInfo) IsPublic() bool    { return false }
func (c *clientInfo) GetUserID() string { return "" }

func (c *clientInfo) VerifyPassword(secret string) bool {
	return c.client.VerifySecret(secret)
}
