package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

type TokenHandler struct {
	issuer TokenIssuer
	logger *zap.Logger
}

func NewTokenHandler(issuer TokenIssuer, logger *zap.Logger) *TokenHandler {
	return &TokenHandler{
		issuer: issuer,
		logger: logger,
	}
}

// Token godoc
// @Summary Issue a token
// @Description OAuth2 token endpoint for the password, client_credentials and refresh_token grants
// @Tags connect
// @Accept x-www-form-urlencoded
// @Produce json
// @Param grant_type formData string true "Grant type"
// @Param client_id formData string false "Client id, when not sent with Basic auth"
// @Param client_secret formData string false "Client secret, when not sent with Basic auth"
// @Param username formData string false "Resource owner email (password grant)"
// @Param password formData string false "Resource owner password (password grant)"
// @Param refresh_token formData string false "Refresh token (refresh_token grant)"
// @Param scope formData string false "Space-delimited scopes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /connect/token [post]
func (h *TokenHandler) Token(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")

	data, err := h.issuer.IssueToken(r)
	if err != nil {
		body, status, header := h.issuer.ErrorData(err)
		for key := range header {
			w.Header().Set(key, header.Get(key))
		}
		writeJSON(w, status, body, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, data, h.logger)
}
