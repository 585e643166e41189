package handlers

import (
	"net/http"
	"strings"

	apperrors "github.com/ipede/freecourse-services/internal/domain/errors"
	httperrors "github.com/ipede/freecourse-services/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

// Discovery describes what the identity server advertises
type Discovery struct {
	Issuer     string
	GrantTypes []string
	Scopes     []string
}

// OpenIDConfiguration is the discovery document
type OpenIDConfiguration struct {
	Issuer                            string   `json:"issuer"`
	JwksURI                           string   `json:"jwks_uri"`
	TokenEndpoint                     string   `json:"token_endpoint"`
	UserInfoEndpoint                  string   `json:"userinfo_endpoint"`
	ScopesSupported                   []string `json:"scopes_supported"`
	GrantTypesSupported               []string `json:"grant_types_supported"`
	ResponseTypesSupported            []string `json:"response_types_supported"`
	SubjectTypesSupported             []string `json:"subject_types_supported"`
	IDTokenSigningAlgValuesSupported  []string `json:"id_token_signing_alg_values_supported"`
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported"`
	ClaimsSupported                   []string `json:"claims_supported"`
}

type OIDCHandler struct {
	keys      KeySource
	discovery Discovery
	logger    *zap.Logger
}

func NewOIDCHandler(keys KeySource, discovery Discovery, logger *zap.Logger) *OIDCHandler {
	discovery.Issuer = strings.TrimRight(discovery.Issuer, "/")
	return &OIDCHandler{
		keys:      keys,
		discovery: discovery,
		logger:    logger,
	}
}

// GetOpenIDConfigurationHandler godoc
// @Summary OpenID discovery document
// @Tags discovery
// @Produce json
// @Success 200 {object} OpenIDConfiguration
// @Router /.well-known/openid-configuration [get]
func (h *OIDCHandler) GetOpenIDConfigurationHandler(w http.ResponseWriter, r *http.Request) {
	issuer := h.discovery.Issuer
	writeJSON(w, http.StatusOK, OpenIDConfiguration{
		Issuer:                            issuer,
		JwksURI:                           issuer + "/.well-known/jwks.json",
		TokenEndpoint:                     issuer + "/connect/token",
		UserInfoEndpoint:                  issuer + "/api/user",
		ScopesSupported:                   h.discovery.Scopes,
		GrantTypesSupported:               h.discovery.GrantTypes,
		ResponseTypesSupported:            []string{"token"},
		SubjectTypesSupported:             []string{"public"},
		IDTokenSigningAlgValuesSupported:  []string{"RS256"},
		TokenEndpointAuthMethodsSupported: []string{"client_secret_basic", "client_secret_post"},
		ClaimsSupported:                   []string{"sub", "iss", "aud", "exp", "iat", "nbf", "jti", "client_id", "scope", "amr"},
	}, h.logger)
}

// GetJWKSHandler godoc
// @Summary Public signing keys
// @Tags discovery
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} httperrors.ErrorResponse
// @Router /.well-known/jwks.json [get]
func (h *OIDCHandler) GetJWKSHandler(w http.ResponseWriter, r *http.Request) {
	set, err := h.keys.JWKS()
	if err != nil {
		h.logger.Error("Failed to get JWKS", zap.Error(err))
		httperrors.RespondWithError(w, apperrors.InternalError, "Failed to get JWKS", nil, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, set, h.logger)
}
