package handlers

import (
	"errors"
	"net/http"

	"bookingadmin/middleware"
	"bookingadmin/services/calendar"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CalendarHandler struct {
	base
	Calendar calendar.CalendarService
}

func NewCalendarHandler(svc calendar.CalendarService, b base) *CalendarHandler {
	return &CalendarHandler{base: b, Calendar: svc}
}

func (h *CalendarHandler) calendarError(c *gin.Context, key string, err error, employeeID string) {
	switch {
	case errors.Is(err, calendar.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": h.t(c, "calendar.missingCredentials", nil), "message": err.Error()})
	case errors.Is(err, calendar.ErrNoEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": h.t(c, "calendar.noEmail", nil), "message": err.Error()})
	default:
		h.fail(c, http.StatusInternalServerError, key, err, zap.String("employeeID", employeeID))
	}
}

// AuthURL handles GET /api/calendar/auth-url/:employeeId. With ?redirect=1 the caller is
// sent straight to Google.
func (h *CalendarHandler) AuthURL(c *gin.Context) {
	id := c.Param("employeeId")
	link, err := h.Calendar.AuthURL(c.Request.Context(), id)
	if err != nil {
		h.calendarError(c, "calendar.authUrlError", err, id)
		return
	}
	if c.Query("redirect") == "1" {
		c.Redirect(http.StatusFound, link)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}

func (h *CalendarHandler) EmailDraft(c *gin.Context) {
	id := c.Param("employeeId")
	draft, err := h.Calendar.EmailDraft(c.Request.Context(), id, middleware.Locale(c))
	if err != nil {
		h.calendarError(c, "calendar.authUrlError", err, id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mailto": draft})
}

// Invite handles POST /api/calendar/invite/:employeeId. The email is sent by the worker;
// 202 only means it was queued.
func (h *CalendarHandler) Invite(c *gin.Context) {
	id := c.Param("employeeId")
	to, err := h.Calendar.SendInvite(c.Request.Context(), id, middleware.Locale(c))
	if err != nil {
		h.calendarError(c, "calendar.inviteError", err, id)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"message": h.t(c, "calendar.inviteQueued", map[string]string{"email": to}),
		"email":   to,
	})
}
