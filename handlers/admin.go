package handlers

import (
	"net/http"

	"bookingadmin/services/seed"
	"bookingadmin/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates maintenance operations.
type AdminHandler struct {
	base
	Seeder *seed.Seeder
	Health *utils.HealthMonitor
}

func NewAdminHandler(seeder *seed.Seeder, health *utils.HealthMonitor, b base) *AdminHandler {
	return &AdminHandler{base: b, Seeder: seeder, Health: health}
}

// Bootstrap handles POST /api/admin/bootstrap and reports what was created.
func (h *AdminHandler) Bootstrap(c *gin.Context) {
	report, err := h.Seeder.Run(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "bootstrap.error", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.t(c, "bootstrap.done", nil), "report": report})
}

// ScheduleOverview handles GET /api/schedule. The planning screen is not available yet.
func (h *AdminHandler) ScheduleOverview(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": h.t(c, "schedule.notImplemented", nil)})
}

// HealthCheck handles GET /health with the last background probe.
func (h *AdminHandler) HealthCheck(c *gin.Context) {
	status := h.Health.Status()
	code := http.StatusOK
	state := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "checks": status})
}
