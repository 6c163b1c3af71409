package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shelfwatch/shelfwatch/sessiontoken"
	"github.com/shelfwatch/shelfwatch/userctx"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

func TestRequireSharedKeyAllowsCorrectKey(t *testing.T) {
	handler := RequireSharedKey("s3cret", zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/manager?key=s3cret", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSharedKeyRejectsMissingOrWrongKey(t *testing.T) {
	handler := RequireSharedKey("s3cret", zap.NewNop())(okHandler())

	for _, target := range []string{"/manager", "/manager?key=wrong", "/manager?key="} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "target %s", target)
	}
}

func TestRequireSharedKeyFailsClosedWhenUnconfigured(t *testing.T) {
	handler := RequireSharedKey("", zap.NewNop())(okHandler())

	// Deterministic deny, even when the request guesses an empty key.
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/manager?key=", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireSessionAcceptsValidCookie(t *testing.T) {
	var seenName string
	handler := RequireSession("session-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenName = userctx.GetManagerName(r.Context())
	}))

	token, err := sessiontoken.Issue("session-secret", "alex", time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/manager", nil)
	req.AddCookie(sessiontoken.NewCookie(token, false))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alex", seenName)
}

func TestRequireSessionRedirectsWithoutCookie(t *testing.T) {
	handler := RequireSession("session-secret")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/manager?range=all", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?return=%2Fmanager%3Frange%3Dall", rec.Header().Get("Location"))
}

func TestRequireSessionRedirectsOnForgedCookie(t *testing.T) {
	handler := RequireSession("session-secret")(okHandler())

	token, err := sessiontoken.Issue("other-secret", "mallory", time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/manager", nil)
	req.AddCookie(sessiontoken.NewCookie(token, false))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:4431"
	assert.Equal(t, "192.0.2.7", ClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", ClientIP(req))
}
