package domain

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

// Grant types accepted by the token endpoint
const (
	GrantTypePassword          = "password"
	GrantTypeClientCredentials = "client_credentials"
	GrantTypeRefreshToken      = "refresh_token"
)

// Well-known scopes
const (
	ScopeLocalAPI      = "IdentityServerApi"
	ScopeOfflineAccess = "offline_access"
)

// OAuth2Client represents a statically registered OAuth2 client
type OAuth2Client struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	SecretHashes []string `json:"-" yaml:"-"`
	GrantTypes   []string `json:"grant_types" yaml:"grant_types"`
	Scopes       []string `json:"scopes" yaml:"scopes"`
}

// VerifySecret compares secret against the registered hashes in constant time.
func (c *OAuth2Client) VerifySecret(secret string) bool {
	presented := HashSecret(secret)
	for _, hash := range c.SecretHashes {
		if subtle.ConstantTimeCompare([]byte(presented), []byte(hash)) == 1 {
			return true
		}
	}
	return false
}

// AllowsGrant reports whether the client may use grantType
func (c *OAuth2Client) AllowsGrant(grantType string) bool {
	return contains(c.GrantTypes, grantType)
}

// ApiScope is a named permission a client may request
type ApiScope struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// ApiResource groups the scopes that grant access to one API. Its name is
// used as the token audience.
type ApiResource struct {
	Name   string   `json:"name" yaml:"name"`
	Scopes []string `json:"scopes" yaml:"scopes"`
}

// Registry is the immutable client/scope table loaded at process start.
type Registry struct {
	Clients      []OAuth2Client
	ApiScopes    []ApiScope
	ApiResources []ApiResource
}

// Client returns the registered client with the given id
func (r *Registry) Client(id string) (*OAuth2Client, bool) {
	for i := range r.Clients {
		if r.Clients[i].ID == id {
			return &r.Clients[i], true
		}
	}
	return nil, false
}

// ValidateScopes checks every scope in the space-delimited requested string
// against the client's allowed scopes. An empty request yields all allowed
// scopes.
func (r *Registry) ValidateScopes(clientID, requested string) (string, bool) {
	client, ok := r.Client(clientID)
	if !ok {
		return "", false
	}

	if strings.TrimSpace(requested) == "" {
		return strings.Join(client.Scopes, " "), true
	}

	scopes := strings.Fields(requested)
	for _, s := range scopes {
		if !contains(client.Scopes, s) {
			return "", false
		}
	}
	return strings.Join(scopes, " "), true
}

// Audiences returns the API resources that own any of the given scopes
func (r *Registry) Audiences(scopes []string) []string {
	var audiences []string
	for _, res := range r.ApiResources {
		for _, s := range scopes {
			if contains(res.Scopes, s) {
				audiences = append(audiences, res.Name)
				break
			}
		}
	}
	return audiences
}

// ScopeNames lists every declared scope
func (r *Registry) ScopeNames() []string {
	names := make([]string, 0, len(r.ApiScopes))
	for _, s := range r.ApiScopes {
		names = append(names, s.Name)
	}
	return names
}

// HashSecret returns base64(SHA-256(secret)), the stored form of client secrets.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
