package handlers

import (
	"errors"
	"net/http"

	"bookingadmin/models"
	"bookingadmin/services/settings"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	base
	Settings settings.SettingsService
}

func NewSettingsHandler(svc settings.SettingsService, b base) *SettingsHandler {
	return &SettingsHandler{base: b, Settings: svc}
}

func (h *SettingsHandler) GetWidget(c *gin.Context) {
	cfg, err := h.Settings.GetWidgetConfig(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "settings.fetchError", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// SaveWidget handles PUT /api/settings/widget; the body replaces the stored configuration.
func (h *SettingsHandler) SaveWidget(c *gin.Context) {
	var body models.WidgetConfig
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	cfg, err := h.Settings.SaveWidgetConfig(c.Request.Context(), body)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "settings.saveError", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// PatchWidget handles PATCH /api/settings/widget with {"workingHours.start": "08:00", ...}.
func (h *SettingsHandler) PatchWidget(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		h.badRequest(c, err)
		return
	}
	cfg, err := h.Settings.PatchWidgetConfig(c.Request.Context(), fields)
	if errors.Is(err, settings.ErrUnknownField) || errors.Is(err, settings.ErrInvalidValue) {
		h.badRequest(c, err)
		return
	}
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "settings.saveError", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *SettingsHandler) GetCalendar(c *gin.Context) {
	s, err := h.Settings.GetCalendarSettings(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "settings.fetchError", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) SaveCalendarCredentials(c *gin.Context) {
	var body models.CalendarCredentials
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	s, err := h.Settings.SaveCalendarCredentials(c.Request.Context(), body)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "settings.saveError", err)
		return
	}
	c.JSON(http.StatusOK, s)
}
