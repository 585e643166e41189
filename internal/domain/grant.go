package domain

import "strings"

// AuthMethodPassword is the OIDC "amr" value for password authentication.
const AuthMethodPassword = "pwd"

// ErrorsKey is the key of the message list in a rejected grant payload.
const ErrorsKey = "errors"

// MsgInvalidEmailOrPassword is the single message returned for every failed
// password grant, whether the email or the password was wrong.
const MsgInvalidEmailOrPassword = "Email or password is incorrect"

// GrantResult is the outcome of validating a resource-owner-password grant.
// A result is either authenticated (Subject set) or rejected (Errors set).
type GrantResult struct {
	Subject    string
	AuthMethod string
	Errors     []string
}

// Authenticated builds a successful grant result for subject.
func Authenticated(subject, authMethod string) GrantResult {
	return GrantResult{Subject: subject, AuthMethod: authMethod}
}

// Rejected builds a failed grant result carrying messages.
func Rejected(messages ...string) GrantResult {
	return GrantResult{Errors: messages}
}

// IsAuthenticated reports whether the grant was accepted.
func (r GrantResult) IsAuthenticated() bool {
	return r.Subject != "" && len(r.Errors) == 0
}

// CustomResponse returns the structured payload of a rejected grant.
func (r GrantResult) CustomResponse() map[string]interface{} {
	if r.IsAuthenticated() {
		return nil
	}
	return map[string]interface{}{ErrorsKey: append([]string(nil), r.Errors...)}
}

// GrantRejectedError carries a rejected GrantResult through the token
// issuance pipeline so the token endpoint can render its payload verbatim.
type GrantRejectedError struct {
	Result GrantResult
}

func (e *GrantRejectedError) Error() string {
	return "grant rejected: " + strings.Join(e.Result.Errors, "; ")
}
