// Package oauth wires the go-oauth2 token issuer to the client registry, the
// password grant validator and the RSA signing key.
package oauth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-oauth2/oauth2/v4"
	oauth2errors "github.com/go-oauth2/oauth2/v4/errors"
	"github.com/go-oauth2/oauth2/v4/manage"
	"github.com/go-oauth2/oauth2/v4/server"
	"github.com/go-oauth2/oauth2/v4/store"
	"github.com/ipede/freecourse-services/internal/domain"
	"github.com/ipede/freecourse-services/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// GrantValidator authenticates the resource owner of a password grant
type GrantValidator interface {
	Validate(ctx context.Context, username, password string) (domain.GrantResult, error)
}

// Config holds issuer settings
type Config struct {
	Issuer          string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
}

// Issuer issues tokens for the password, client credentials and refresh
// token grants.
type Issuer struct {
	srv       *server.Server
	cfg       Config
	registry  *domain.Registry
	validator GrantValidator
	metrics   metrics.MetricsCollector
	logger    *zap.Logger
}

// SupportedGrantTypes lists the grants the issuer accepts
var SupportedGrantTypes = []oauth2.GrantType{
	oauth2.PasswordCredentials,
	oauth2.ClientCredentials,
	oauth2.Refreshing,
}

func NewIssuer(
	cfg Config,
	registry *domain.Registry,
	signer Signer,
	validator GrantValidator,
	collector metrics.MetricsCollector,
	logger *zap.Logger,
) (*Issuer, error) {
	tokenStore, err := store.NewMemoryTokenStore()
	if err != nil {
		return nil, err
	}
	if collector == nil {
		collector = metrics.Nop{}
	}

	manager := manage.NewDefaultManager()
	manager.SetPasswordTokenCfg(&manage.Config{
		AccessTokenExp:    cfg.AccessTokenExp,
		RefreshTokenExp:   cfg.RefreshTokenExp,
		IsGenerateRefresh: true,
	})
	manager.SetClientTokenCfg(&manage.Config{
		AccessTokenExp: cfg.AccessTokenExp,
	})
	manager.SetRefreshTokenCfg(&manage.RefreshingConfig{
		AccessTokenExp:     cfg.AccessTokenExp,
		RefreshTokenExp:    cfg.RefreshTokenExp,
		IsGenerateRefresh:  true,
		IsRemoveAccess:     true,
		IsRemoveRefreshing: true,
	})
	manager.MapTokenStorage(tokenStore)
	manager.MapClientStorage(&clientStore{registry: registry})
	manager.MapAccessGenerate(&jwtAccessGenerate{
		signer:   signer,
		issuer:   cfg.Issuer,
		registry: registry,
	})

	i := &Issuer{
		cfg:       cfg,
		registry:  registry,
		validator: validator,
		metrics:   collector,
		logger:    logger,
	}

	srv := server.NewDefaultServer(manager)
	srv.SetAllowGetAccessRequest(false)
	srv.SetAllowedGrantType(SupportedGrantTypes...)
	srv.SetClientInfoHandler(clientInfoHandler)
	srv.SetPasswordAuthorizationHandler(i.authorizePassword)
	srv.SetClientAuthorizedHandler(i.authorizeClient)
	srv.SetClientScopeHandler(i.authorizeScope)
	srv.SetRefreshingScopeHandler(func(tgr *oauth2.TokenGenerateRequest, oldScope string) (bool, error) {
		granted := strings.Fields(oldScope)
		for _, s := range strings.Fields(tgr.Scope) {
			if !contains(granted, s) {
				return false, nil
			}
		}
		return true, nil
	})
	srv.SetInternalErrorHandler(func(err error) *oauth2errors.Response {
		logger.Error("token issuance failed", zap.Error(err))
		return nil
	})
	i.srv = srv

	return i, nil
}

// IssueToken validates a token request and returns the token response body
func (i *Issuer) IssueToken(r *http.Request) (map[string]interface{}, error) {
	gt, tgr, err := i.srv.ValidationTokenRequest(r)
	if err != nil {
		i.recordFailure(r.FormValue("grant_type"), err)
		return nil, err
	}

	ti, err := i.srv.GetAccessToken(r.Context(), gt, tgr)
	if err != nil {
		i.recordFailure(gt.String(), err)
		return nil, err
	}

	i.metrics.RecordGrant(gt.String(), metrics.GrantIssued)
	i.logger.Info("token issued",
		zap.String("grant_type", gt.String()),
		zap.String("client_id", ti.GetClientID()),
		zap.String("subject", ti.GetUserID()),
	)
	return i.srv.GetTokenData(ti), nil
}

// ErrorData renders err as an OAuth2 error body. A rejected password grant
// carries its messages under "errors".
func (i *Issuer) ErrorData(err error) (map[string]interface{}, int, http.Header) {
	var rejected *domain.GrantRejectedError
	if errors.As(err, &rejected) {
		data := rejected.Result.CustomResponse()
		data["error"] = oauth2errors.ErrInvalidGrant.Error()
		return data, http.StatusBadRequest, nil
	}
	return i.srv.GetErrorData(err)
}

// Issuer returns the configured issuer URL
func (i *Issuer) Issuer() string {
	return i.cfg.Issuer
}

func (i *Issuer) recordFailure(grantType string, err error) {
	outcome := metrics.GrantFailed
	var rejected *domain.GrantRejectedError
	if errors.As(err, &rejected) {
		outcome = metrics.GrantRejected
	}
	i.metrics.RecordGrant(grantType, outcome)
}

func (i *Issuer) authorizePassword(ctx context.Context, clientID, username, password string) (string, error) {
	client, ok := i.registry.Client(clientID)
	if !ok {
		return "", oauth2errors.ErrInvalidClient
	}
	if !client.AllowsGrant(domain.GrantTypePassword) {
		return "", oauth2errors.ErrUnauthorizedClient
	}

	result, err := i.validator.Validate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !result.IsAuthenticated() {
		return "", &domain.GrantRejectedError{Result: result}
	}
	return result.Subject, nil
}

func (i *Issuer) authorizeClient(clientID string, grant oauth2.GrantType) (bool, error) {
	client, ok := i.registry.Client(clientID)
	if !ok {
		return false, oauth2errors.ErrInvalidClient
	}
	return client.AllowsGrant(grant.String()), nil
}

// authorizeScope narrows tgr.Scope to the validated scope list
func (i *Issuer) authorizeScope(tgr *oauth2.TokenGenerateRequest) (bool, error) {
	scope, ok := i.registry.ValidateScopes(tgr.ClientID, tgr.Scope)
	if !ok {
		return false, nil
	}
	tgr.Scope = scope
	return true, nil
}

// clientInfoHandler accepts client credentials from Basic auth or the form
func clientInfoHandler(r *http.Request) (string, string, error) {
	if id, secret, ok := r.BasicAuth(); ok {
		return id, secret, nil
	}
	id := r.FormValue("client_id")
	if id == "" {
		return "", "", oauth2errors.ErrInvalidClient
	}
	return id, r.FormValue("client_secret"), nil
}
