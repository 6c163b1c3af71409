package authenticator

import (
	"context"
)

// Token represents an authentication token
type Token struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       int64
}

// Claims represents user claims from the ID token
type Claims map[string]interface{}

// DisplayName picks a human-readable identity from the claims, falling
// back through nickname, name, email and finally the subject.
func (c Claims) DisplayName() string {
	for _, key := range []string{"nickname", "name", "email"} {
		if v, ok := c[key].(string); ok && v != "" {
			return v
		}
	}
	if sub, ok := c["sub"].(string); ok {
		return sub
	}
	return ""
}

// Subject returns the stable subject identifier, or an empty string.
func (c Claims) Subject() string {
	sub, _ := c["sub"].(string)
	return sub
}

// Provider interface abstracts the identity provider operations used by
// the delegated access gate.
type Provider interface {
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	GetClaims(ctx context.Context, token *Token) (Claims, error)
}
