package controllers

import (
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/shelfwatch/shelfwatch/middleware"
)

// HomeController serves the landing page
type HomeController struct{}

// NewHomeController creates a new home controller
func NewHomeController() *HomeController {
	return &HomeController{}
}

// Index handles GET /
func (c *HomeController) Index(w http.ResponseWriter, r *http.Request) {
	templateData := struct {
		Title string
	}{
		Title: "Report a Shortage",
	}

	renderTemplate(w, "landing", "landing.html", templateData)
}

// IndexDelegated handles GET / when the delegated-identity gate is
// active: signed-in managers land on the checklist, everyone else is
// sent to the provider's sign-in entry point.
func (c *HomeController) IndexDelegated(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	if sess.Get(middleware.SessionKeyManagerID) != nil {
		http.Redirect(w, r, "/checklist", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
