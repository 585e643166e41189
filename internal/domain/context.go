package domain

import "context"

// ContextKey is a type for context keys to avoid magic strings
type ContextKey string

const (
	// ContextKeySubject is the key for the subject (user ID) in the context
	ContextKeySubject ContextKey = "sub"
	// ContextKeyScopes is the key for the granted scopes in the context
	ContextKeyScopes ContextKey = "scopes"
	// ContextKeyClientID is the key for the OAuth2 client id in the context
	ContextKeyClientID ContextKey = "client_id"
)

// WithSubject adds the subject (user ID) to the context
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ContextKeySubject, subject)
}

// SubjectFromContext returns the subject stored by WithSubject
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(ContextKeySubject).(string)
	return sub, ok && sub != ""
}

// WithScopes adds the granted scopes to the context
func WithScopes(ctx context.Context, scopes []string) context.Context {
	return context.WithValue(ctx, ContextKeyScopes, scopes)
}

// ScopesFromContext returns the scopes stored by WithScopes
func ScopesFromContext(ctx context.Context) []string {
	scopes, _ := ctx.Value(ContextKeyScopes).([]string)
	return scopes
}

// WithClientID adds the OAuth2 client id to the context
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, ContextKeyClientID, clientID)
}

// ClientIDFromContext returns the client id stored by WithClientID
func ClientIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyClientID).(string)
	return id
}
