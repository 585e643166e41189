package integration

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ipede/freecourse-services/internal/application"
	"github.com/ipede/freecourse-services/internal/infrastructure/config"
	jwtkeys "github.com/ipede/freecourse-services/internal/infrastructure/jwt"
	"github.com/ipede/freecourse-services/internal/infrastructure/oauth"
	"github.com/ipede/freecourse-services/internal/infrastructure/repository"
	httprouter "github.com/ipede/freecourse-services/internal/interfaces/http"
	"github.com/ipede/freecourse-services/internal/interfaces/http/handlers"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPasswordGrantFlow(t *testing.T) {
	db, _ := setupTestDatabase(t)
	logger := zap.NewNop()

	key, err := rsa.GenerateKey(rand.Reader, jwtkeys.RSAKeySize)
	require.NoError(t, err)
	keys := jwtkeys.NewKeyManagerFromKey(key, logger)

	userRepo := repository.NewUserRepository(db, logger)
	userService := application.NewUserService(userRepo, logger)
	validator := application.NewResourceOwnerPasswordValidator(repository.NewCredentialStore(userRepo), logger)

	registry := config.DefaultRegistry()
	issuer, err := oauth.NewIssuer(oauth.Config{
		Issuer:          "http://identity.test",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
	}, registry, keys, validator, nil, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	router := httprouter.NewIdentityRouter(ctx, httprouter.IdentityDeps{
		Ops:        httprouter.Ops{DB: db},
		Users:      userService,
		Issuer:     issuer,
		Keys:       keys,
		PublicKey:  keys.PublicKey(),
		Discovery:  handlers.Discovery{Issuer: issuer.Issuer()},
		TokenRate:  100,
		TokenBurst: 100,
	}, logger)

	email := fmt.Sprintf("user-%s@example.com", strings.ToLower(ulid.Make().String()))

	// Sign up
	body := fmt.Sprintf(`{"userName":"flow","email":%q,"password":"Password1","city":"Lisbon"}`, email)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/user/signup", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Duplicate sign up, email matched case-insensitively
	dup := strings.Replace(body, email, strings.ToUpper(email), 1)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/user/signup", strings.NewReader(dup)))
	assert.Equal(t, http.StatusConflict, w.Code)

	token := func(password string) *httptest.ResponseRecorder {
		form := url.Values{
			"grant_type": {"password"},
			"username":   {email},
			"password":   {password},
			"scope":      {"catalog_fullpermission IdentityServerApi offline_access"},
		}
		req := httptest.NewRequest(http.MethodPost, "/connect/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.SetBasicAuth("WebMvcClientForUser", "secret")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// Wrong password
	w = token("nope")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_grant")

	// Correct password
	w = token("Password1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tokens map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&tokens))
	access, _ := tokens["access_token"].(string)
	require.NotEmpty(t, access)
	assert.NotEmpty(t, tokens["refresh_token"])

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(access, claims, func(*jwt.Token) (interface{}, error) {
		return keys.PublicKey(), nil
	})
	require.NoError(t, err)
	aud, err := claims.GetAudience()
	require.NoError(t, err)
	assert.Contains(t, aud, "resource_catalog")

	// Profile of the token subject
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), email)
}
