package auth

import (
	"crypto/rsa"
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/ipede/freecourse-services/internal/domain"
	apperrors "github.com/ipede/freecourse-services/internal/domain/errors"
	httperrors "github.com/ipede/freecourse-services/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

// ErrorWriter writes an authentication or authorization failure
type ErrorWriter func(w http.ResponseWriter, code, message string, status int)

// AuthMiddleware verifies RS256 bearer tokens issued by the identity server
type AuthMiddleware struct {
	ja      *jwtauth.JWTAuth
	respond ErrorWriter
	logger  *zap.Logger
}

func NewAuthMiddleware(publicKey *rsa.PublicKey, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		ja: jwtauth.New("RS256", nil, publicKey),
		respond: func(w http.ResponseWriter, code, message string, status int) {
			httperrors.RespondWithError(w, code, message, nil, status)
		},
		logger: logger,
	}
}

// WithErrorWriter replaces the failure response format
func (m *AuthMiddleware) WithErrorWriter(respond ErrorWriter) *AuthMiddleware {
	m.respond = respond
	return m
}

// Verifier extracts and verifies the bearer token
func (m *AuthMiddleware) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verifier(m.ja)
}

// Authenticator rejects requests without a valid token and stores the
// subject, client id and scopes of valid ones in the request context
func (m *AuthMiddleware) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			if err != nil {
				m.logger.Debug("bearer token rejected", zap.Error(err))
			}
			m.respond(w, apperrors.UnauthorizedError, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := domain.WithScopes(r.Context(), scopesOf(claims["scope"]))
		if sub := token.Subject(); sub != "" {
			ctx = domain.WithSubject(ctx, sub)
		}
		if clientID, ok := claims["client_id"].(string); ok {
			ctx = domain.WithClientID(ctx, clientID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAudience rejects tokens not issued for the given API resource
func (m *AuthMiddleware) RequireAudience(audience string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				m.respond(w, apperrors.UnauthorizedError, "Unauthorized", http.StatusUnauthorized)
				return
			}
			for _, aud := range token.Audience() {
				if aud == audience {
					next.ServeHTTP(w, r)
					return
				}
			}
			m.respond(w, httperrors.ErrCodeForbidden, "Forbidden", http.StatusForbidden)
		})
	}
}

// RequireIssuer rejects tokens whose iss claim is not the identity server's
// issuer URL. A trailing slash on either side is ignored.
func (m *AuthMiddleware) RequireIssuer(issuer string) func(http.Handler) http.Handler {
	want := strings.TrimSuffix(issuer, "/")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				m.respond(w, apperrors.UnauthorizedError, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if strings.TrimSuffix(token.Issuer(), "/") != want {
				m.logger.Debug("bearer token from unexpected issuer", zap.String("iss", token.Issuer()))
				m.respond(w, apperrors.UnauthorizedError, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireScope rejects requests whose token lacks scope
func (m *AuthMiddleware) RequireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, s := range domain.ScopesFromContext(r.Context()) {
				if s == scope {
					next.ServeHTTP(w, r)
					return
				}
			}
			m.respond(w, httperrors.ErrCodeForbidden, "Forbidden", http.StatusForbidden)
		})
	}
}

// scopesOf accepts the scope claim as a JSON array or a space-delimited string
func scopesOf(claim interface{}) []string {
	switch v := claim.(type) {
	case string:
		return strings.Fields(v)
	case []string:
		return v
	case []interface{}:
		scopes := make([]string, 0, len(v))
		for _, s := range v {
			if str, ok := s.(string); ok {
				scopes = append(scopes, str)
			}
		}
		return scopes
	default:
		return nil
	}
}
