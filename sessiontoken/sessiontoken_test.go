package sessiontoken

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	token, err := Issue("secret-1", "alex", time.Now())
	require.NoError(t, err)

	name, err := Verify("secret-1", token)
	require.NoError(t, err)
	assert.Equal(t, "alex", name)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := Issue("secret-1", "alex", time.Now())
	require.NoError(t, err)

	_, err = Verify("secret-2", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	token, err := Issue("secret-1", "alex", time.Now().Add(-Lifetime-time.Hour))
	require.NoError(t, err)

	_, err = Verify("secret-1", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsEmptyAndGarbage(t *testing.T) {
	_, err := Verify("secret-1", "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = Verify("secret-1", "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCookieAttributes(t *testing.T) {
	cookie := NewCookie("tok", true)
	assert.Equal(t, CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int(Lifetime/time.Second), cookie.MaxAge)

	cleared := ClearCookie(false)
	assert.Equal(t, -1, cleared.MaxAge)
	assert.Empty(t, cleared.Value)
}
