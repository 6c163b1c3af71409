// Package sessiontoken signs and verifies the manager session cookie
// used by the self-hosted-credential access gate. Sessions are
// stateless: the cookie is re-verified on every request and there is no
// server-side invalidation tracking.
package sessiontoken

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// CookieName is the manager session cookie.
const CookieName = "manager_session"

// Lifetime is how long an issued session stays valid.
const Lifetime = 7 * 24 * time.Hour

// ErrInvalidToken covers every verification failure; callers treat all
// of them uniformly as "not authenticated".
var ErrInvalidToken = errors.New("invalid session token")

// Claims are the signed session claims.
type Claims struct {
	jwt.StandardClaims
	Name string `json:"name"`
}

// Issue creates a signed session token for the given manager name.
func Issue(secret, name string, now time.Time) (string, error) {
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(Lifetime).Unix(),
		},
		Name: name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature and expiry and returns the manager
// name it was issued for.
func Verify(secret, tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("%w: token is empty", ErrInvalidToken)
	}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method: %v", ErrInvalidToken, token.Header["alg"])
		}
		return []byte(secret), nil
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, keyFunc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", fmt.Errorf("%w: token is not valid", ErrInvalidToken)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return "", fmt.Errorf("%w: failed to parse claims", ErrInvalidToken)
	}

	return claims.Name, nil
}

// NewCookie wraps a signed token in the session cookie: http-only,
// same-site-lax, secure when the deployment serves HTTPS.
func NewCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(Lifetime / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie.
func ClearCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
