package handlers

import (
	"errors"
	"net/http"

	"bookingadmin/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	base
	Bookings booking.BookingService
}

func NewBookingHandler(svc booking.BookingService, b base) *BookingHandler {
	return &BookingHandler{base: b, Bookings: svc}
}

func (h *BookingHandler) List(c *gin.Context) {
	list, err := h.Bookings.List(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "bookings.fetchError", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) ByProfessional(c *gin.Context) {
	list, err := h.Bookings.ListByProfessional(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "bookings.fetchError", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) Get(c *gin.Context) {
	id := c.Param("id")
	b, err := h.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "bookings.fetchError", err, zap.String("bookingID", id))
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateStatus handles PATCH /api/bookings/:id/status and answers with the booking as
// re-read after the write.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	b, err := h.Bookings.UpdateStatus(c.Request.Context(), id, body.Status)
	if errors.Is(err, booking.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   h.t(c, "bookings.status.invalid", map[string]string{"status": body.Status}),
			"message": err.Error(),
		})
		return
	}
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "bookings.status.updateError", err, zap.String("bookingID", id))
		return
	}
	status := h.t(c, "bookings.status."+b.Status, nil)
	c.JSON(http.StatusOK, gin.H{
		"message": h.t(c, "bookings.status.updateSuccess", map[string]string{"status": status}),
		"booking": b,
	})
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Bookings.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, http.StatusInternalServerError, "bookings.deleteError", err, zap.String("bookingID", id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.t(c, "bookings.deleteSuccess", nil)})
}
