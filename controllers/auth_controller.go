package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gitea.com/go-chi/session"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shelfwatch/shelfwatch/authenticator"
	"github.com/shelfwatch/shelfwatch/middleware"
	"github.com/shelfwatch/shelfwatch/sessiontoken"
)

// AuthController implements both manager sign-in variants: the
// self-hosted password login issuing a signed session cookie, and the
// delegated OIDC flow keeping identity in the server session.
type AuthController struct {
	logger *zap.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(logger *zap.Logger) *AuthController {
	return &AuthController{logger: logger}
}

type loginPageData struct {
	Title    string
	Error    string
	ReturnTo string
}

// ShowLogin handles GET /login in the self-hosted-credential variant
func (ac *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "login", "login.html", loginPageData{
		Title:    "Sign In",
		ReturnTo: safeReturnTo(r.URL.Query().Get("return")),
	})
}

// Login handles POST /login: verify the password against the configured
// bcrypt hash and issue the signed session cookie
func (ac *AuthController) Login(passwordHash, sessionSecret string, secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}

		returnTo := safeReturnTo(r.FormValue("return"))
		password := r.FormValue("password")

		if passwordHash == "" || bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
			renderTemplateWithStatus(w, http.StatusUnauthorized, "login", "login.html", loginPageData{
				Title:    "Sign In",
				Error:    "Wrong password",
				ReturnTo: returnTo,
			})
			return
		}

		token, err := sessiontoken.Issue(sessionSecret, "manager", time.Now())
		if err != nil {
			ac.logger.Error("failed to issue session token", zap.Error(err))
			http.Error(w, "Failed to sign in", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, sessiontoken.NewCookie(token, secureCookies))

		if returnTo == "" {
			returnTo = "/manager"
		}
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
	}
}

// Logout handles GET /logout in the self-hosted-credential variant
func (ac *AuthController) Logout(secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, sessiontoken.ClearCookie(secureCookies))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// LoginDelegated handles GET /login in the delegated-identity variant:
// redirect to the provider's sign-in page with a CSRF state
func (ac *AuthController) LoginDelegated(auth authenticator.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := generateRandomState()
		if err != nil {
			http.Error(w, "Failed to start sign-in", http.StatusInternalServerError)
			return
		}

		// Save the state in the session to validate in callback
		sess := session.GetSession(r)
		sess.Set("state", state)

		http.Redirect(w, r, auth.GetAuthURL(state), http.StatusTemporaryRedirect)
	}
}

// CallbackDelegated handles GET /callback from the identity provider
func (ac *AuthController) CallbackDelegated(auth authenticator.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)

		// Verify state
		storedState := sess.Get("state")
		if storedState == nil || r.URL.Query().Get("state") != storedState.(string) {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		token, err := auth.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
		if err != nil {
			ac.logger.Warn("failed to exchange authorization code", zap.Error(err))
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		claims, err := auth.GetClaims(r.Context(), token)
		if err != nil {
			ac.logger.Warn("failed to verify ID token", zap.Error(err))
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		sess.Set(middleware.SessionKeyManagerID, claims.Subject())
		sess.Set(middleware.SessionKeyManagerName, claims.DisplayName())
		sess.Delete("state")

		returnTo := "/checklist"
		if stored, ok := sess.Get(middleware.SessionKeyReturnTo).(string); ok && stored != "" {
			returnTo = safeReturnTo(stored)
			sess.Delete(middleware.SessionKeyReturnTo)
		}
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
	}
}

// LogoutDelegated handles GET /logout in the delegated-identity variant
func (ac *AuthController) LogoutDelegated(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	sess.Delete(middleware.SessionKeyManagerID)
	sess.Delete(middleware.SessionKeyManagerName)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// safeReturnTo allows only same-site path redirects
func safeReturnTo(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	if _, err := url.Parse(raw); err != nil {
		return ""
	}
	return raw
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
