package oauth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"

	"github.com/go-oauth2/oauth2/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ipede/freecourse-services/internal/domain"
	"github.com/oklog/ulid/v2"
)

// Signer signs JWT claims
type Signer interface {
	Sign(claims jwt.Claims) (string, error)
}

// AccessClaims are the claims carried by issued access tokens
type AccessClaims struct {
	ClientID string   `json:"client_id"`
	Scope    []string `json:"scope,omitempty"`
	AMR      []string `json:"amr,omitempty"`
	jwt.RegisteredClaims
}

// jwtAccessGenerate implements oauth2.AccessGenerate with RS256 JWT access
// tokens and opaque refresh tokens.
type jwtAccessGenerate struct {
	signer   Signer
	issuer   string
	registry *domain.Registry
}

func (g *jwtAccessGenerate) Token(_ context.Context, data *oauth2.GenerateBasic, isGenRefresh bool) (string, string, error) {
	scopes := strings.Fields(data.TokenInfo.GetScope())
	createdAt := data.TokenInfo.GetAccessCreateAt()
	if createdAt.IsZero() {
		createdAt = data.CreateAt
	}

	claims := AccessClaims{
		ClientID: data.Client.GetID(),
		Scope:    scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   data.UserID,
			Audience:  g.registry.Audiences(scopes),
			IssuedAt:  jwt.NewNumericDate(createdAt),
			NotBefore: jwt.NewNumericDate(createdAt),
			ExpiresAt: jwt.NewNumericDate(createdAt.Add(data.TokenInfo.GetAccessExpiresIn())),
			ID:        ulid.Make().String(),
		},
	}
	if data.UserID != "" {
		claims.AMR = []string{domain.AuthMethodPassword}
	}

	access, err := g.signer.Sign(claims)
	if err != nil {
		return "", "", err
	}

	var refresh string
	if isGenRefresh && contains(scopes, domain.ScopeOfflineAccess) {
		refresh = opaqueToken(access, createdAt)
	}
	return access, refresh, nil
}

func opaqueToken(seed string, at time.Time) string {
	buf := uuid.NewSHA1(uuid.Must(uuid.NewRandom()), []byte(seed+at.String()))
	sum := sha256.Sum256(buf[:])
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum[:]), "=")
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
