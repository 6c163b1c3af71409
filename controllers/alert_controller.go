package controllers

import (
	"net/http"

	"github.com/shelfwatch/shelfwatch/middleware"
	"github.com/shelfwatch/shelfwatch/models"
	"github.com/shelfwatch/shelfwatch/services"
)

// AlertController handles staff alert intake
type AlertController struct {
	services *services.Services
}

// NewAlertController creates a new alert controller
func NewAlertController(services *services.Services) *AlertController {
	return &AlertController{
		services: services,
	}
}

// Submit handles GET /alert?item=&qty=&location=
func (c *AlertController) Submit(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	item := query.Get("item")
	qty := query.Get("qty")

	if item == "" || qty == "" {
		http.Error(w, "item and qty are required", http.StatusBadRequest)
		return
	}

	result := c.services.Alert.Submit(r.Context(), services.SubmitInput{
		Item:      item,
		Quantity:  qty,
		Location:  query.Get("location"),
		IP:        middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	})

	templateData := struct {
		Title    string
		Event    models.AlertEvent
		Notified bool
	}{
		Title:    "Alert Recorded",
		Event:    result.Event,
		Notified: result.Notified,
	}

	renderTemplate(w, "alert", "alert.html", templateData)
}
