package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func tokenRequest() *http.Request {
	form := url.Values{"grant_type": {"password"}, "username": {"a@b.co"}, "password": {"secret1"}}
	req := httptest.NewRequest(http.MethodPost, "/connect/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestTokenHandler_Success(t *testing.T) {
	issuer := new(MockTokenIssuer)
	issuer.On("IssueToken", mock.Anything).Return(map[string]interface{}{
		"access_token": "jwt",
		"token_type":   "Bearer",
		"expires_in":   3600,
	}, nil)

	w := httptest.NewRecorder()
	NewTokenHandler(issuer, zap.NewNop()).Token(w, tokenRequest())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "jwt", body["access_token"])
	issuer.AssertExpectations(t)
}

func TestTokenHandler_Error(t *testing.T) {
	failure := errors.New("invalid client")
	header := http.Header{}
	header.Set("WWW-Authenticate", `Basic realm="token"`)
	issuer := new(MockTokenIssuer)
	issuer.On("IssueToken", mock.Anything).Return(nil, failure)
	issuer.On("ErrorData", failure).Return(
		map[string]interface{}{"error": "invalid_client"},
		http.StatusUnauthorized,
		header,
	)

	w := httptest.NewRecorder()
	NewTokenHandler(issuer, zap.NewNop()).Token(w, tokenRequest())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="token"`, w.Header().Get("WWW-Authenticate"))
	assert.JSONEq(t, `{"error":"invalid_client"}`, w.Body.String())
	issuer.AssertExpectations(t)
}
