package handlers

import (
	"net/http"

	"bookingadmin/realtime"
	"bookingadmin/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	base
	Bookings booking.BookingService
	Hub      *realtime.Hub
	Upgrader *websocket.Upgrader
}

func NewDashboardHandler(svc booking.BookingService, hub *realtime.Hub, upgrader *websocket.Upgrader, b base) *DashboardHandler {
	return &DashboardHandler{base: b, Bookings: svc, Hub: hub, Upgrader: upgrader}
}

// Get handles GET /api/dashboard.
func (h *DashboardHandler) Get(c *gin.Context) {
	dash, err := h.Bookings.Dashboard(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "dashboard.fetchError", err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// Stream handles GET /api/dashboard/ws. The first message is the current dashboard; a new
// one follows every change to the bookings collection.
func (h *DashboardHandler) Stream(c *gin.Context) {
	if err := h.Hub.ServeWS(h.Upgrader, c.Writer, c.Request); err != nil {
		// The upgrader has already written the HTTP error.
		h.Logger.Warn("Websocket upgrade failed", zap.Error(err))
	}
}
