package controllers

import (
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shelfwatch/shelfwatch/display"
	"github.com/shelfwatch/shelfwatch/models"
	"github.com/shelfwatch/shelfwatch/services"
	"github.com/shelfwatch/shelfwatch/templates"
)

// renderTemplate creates a template set and renders it with the provided data
func renderTemplate(w http.ResponseWriter, templateName string, pageTemplate string, data interface{}) error {
	return renderTemplateWithStatus(w, http.StatusOK, templateName, pageTemplate, data)
}

// renderTemplateWithStatus creates a template set and renders it with the provided data and status code
func renderTemplateWithStatus(w http.ResponseWriter, statusCode int, templateName string, pageTemplate string, data interface{}) error {
	tmpl := template.New(templateName)
	tmpl.Funcs(template.FuncMap{
		"severity":   func(status string) display.Severity { return display.Classify(status) },
		"formatTime": func(t time.Time) string { return models.FormatTimestamp(t) },
		"eq":         func(a, b interface{}) bool { return a == b },
	})

	// Parse layout and page template
	_, err := tmpl.ParseFS(templates.FS, "layout.html", pageTemplate)
	if err != nil {
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}

	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	return nil
}

// Controllers holds all controller instances
type Controllers struct {
	Alert   *AlertController
	Manager *ManagerController
	Home    *HomeController
	Auth    *AuthController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, logger *zap.Logger) *Controllers {
	return &Controllers{
		Alert:   NewAlertController(services),
		Manager: NewManagerController(services, logger),
		Home:    NewHomeController(),
		Auth:    NewAuthController(logger),
	}
}
