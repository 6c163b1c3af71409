package controllers

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/shelfwatch/shelfwatch/models"
	"github.com/shelfwatch/shelfwatch/services"
)

// ManagerController serves the manager-facing views over the event log
type ManagerController struct {
	services *services.Services
	logger   *zap.Logger
}

// NewManagerController creates a new manager controller
func NewManagerController(services *services.Services, logger *zap.Logger) *ManagerController {
	return &ManagerController{
		services: services,
		logger:   logger,
	}
}

// Index handles GET /manager?range=today|all
func (c *ManagerController) Index(w http.ResponseWriter, r *http.Request) {
	rng := services.ParseRange(r.URL.Query().Get("range"))

	events, err := c.services.Report.Events(r.Context(), rng)
	if err != nil {
		c.logger.Error("failed to load events", zap.Error(err))
		http.Error(w, "Failed to load events", http.StatusInternalServerError)
		return
	}

	toggle := services.RangeAll
	if rng == services.RangeAll {
		toggle = services.RangeToday
	}

	templateData := struct {
		Title        string
		Range        string
		Events       []models.AlertEvent
		ToggleURL    string
		CSVURL       string
		ChecklistURL string
	}{
		Title:        "Alert Log",
		Range:        string(rng),
		Events:       events,
		ToggleURL:    gatedURL(r, "/manager", string(toggle)),
		CSVURL:       gatedURL(r, "/manager.csv", string(rng)),
		ChecklistURL: gatedURL(r, "/checklist", ""),
	}

	renderTemplate(w, "manager", "manager.html", templateData)
}

// CSV handles GET /manager.csv?range=today|all
func (c *ManagerController) CSV(w http.ResponseWriter, r *http.Request) {
	rng := services.ParseRange(r.URL.Query().Get("range"))

	data, err := c.services.Report.CSV(r.Context(), rng)
	if err != nil {
		c.logger.Error("failed to export events", zap.Error(err))
		http.Error(w, "Failed to export events", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="alerts.csv"`)
	w.Write(data)
}

// Checklist handles GET /checklist
func (c *ManagerController) Checklist(w http.ResponseWriter, r *http.Request) {
	entries, err := c.services.Report.Checklist(r.Context())
	if err != nil {
		c.logger.Error("failed to build checklist", zap.Error(err))
		http.Error(w, "Failed to build checklist", http.StatusInternalServerError)
		return
	}

	templateData := struct {
		Title      string
		Entries    []models.AlertEvent
		ManagerURL string
	}{
		Title:      "Restock Checklist",
		Entries:    entries,
		ManagerURL: gatedURL(r, "/manager", ""),
	}

	renderTemplate(w, "checklist", "checklist.html", templateData)
}

// gatedURL builds a link to another manager view, carrying over the
// shared-secret key parameter when the request arrived with one.
func gatedURL(r *http.Request, path, rng string) string {
	values := url.Values{}
	if rng != "" {
		values.Set("range", rng)
	}
	if key := r.URL.Query().Get("key"); key != "" {
		values.Set("key", key)
	}
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}
