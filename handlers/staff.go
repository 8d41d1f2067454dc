package handlers

import (
	"errors"
	"net/http"

	"bookingadmin/models"
	"bookingadmin/services/schedule"
	"bookingadmin/services/staff"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StaffHandler struct {
	base
	Staff staff.StaffService
}

func NewStaffHandler(svc staff.StaffService, b base) *StaffHandler {
	return &StaffHandler{base: b, Staff: svc}
}

func (h *StaffHandler) List(c *gin.Context) {
	list, err := h.Staff.List(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "staff.fetchError", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *StaffHandler) Save(c *gin.Context) {
	var in models.EmployeeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err)
		return
	}
	list, err := h.Staff.Save(c.Request.Context(), in)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "staff.saveError", err, zap.String("employeeID", in.ID))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *StaffHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	list, err := h.Staff.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "staff.deleteError", err, zap.String("employeeID", id))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *StaffHandler) SetActive(c *gin.Context) {
	id := c.Param("id")
	var body activeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	list, err := h.Staff.SetActive(c.Request.Context(), id, *body.Active)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "staff.saveError", err, zap.String("employeeID", id))
		return
	}
	c.JSON(http.StatusOK, list)
}

// SetServices handles PUT /api/staff/:id/services with {"services": [ids]}.
func (h *StaffHandler) SetServices(c *gin.Context) {
	id := c.Param("id")
	var body struct {
		Services []string `json:"services" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	list, err := h.Staff.SetServices(c.Request.Context(), id, body.Services)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "staff.saveError", err, zap.String("employeeID", id))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *StaffHandler) GetSchedule(c *gin.Context) {
	id := c.Param("id")
	s, err := h.Staff.GetSchedule(c.Request.Context(), id)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "staff.schedule.fetchError", err, zap.String("employeeID", id))
		return
	}
	c.JSON(http.StatusOK, s)
}

// ReplaceSchedule handles PUT /api/staff/:id/schedule with a whole schedule document.
func (h *StaffHandler) ReplaceSchedule(c *gin.Context) {
	id := c.Param("id")
	var body models.EmployeeSchedule
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	s, err := h.Staff.ReplaceSchedule(c.Request.Context(), id, body)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "staff.schedule.saveError", err, zap.String("employeeID", id))
		return
	}
	c.JSON(http.StatusOK, s)
}

// EditSchedule handles POST /api/staff/:id/schedule/ops. The operations run in order on the
// stored schedule and the result is saved only when all of them succeed.
func (h *StaffHandler) EditSchedule(c *gin.Context) {
	id := c.Param("id")
	var body struct {
		Ops []schedule.Op `json:"ops" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	s, err := h.Staff.EditSchedule(c.Request.Context(), id, body.Ops)
	if isScheduleOpError(err) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   h.t(c, "staff.schedule.invalidOperation", map[string]string{"detail": err.Error()}),
			"message": err.Error(),
		})
		return
	}
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "staff.schedule.saveError", err, zap.String("employeeID", id))
		return
	}
	c.JSON(http.StatusOK, s)
}

func isScheduleOpError(err error) bool {
	for _, target := range []error{
		schedule.ErrUnknownDay, schedule.ErrSlotIndex, schedule.ErrSlotField,
		schedule.ErrUnknownOp, schedule.ErrExceptionMissing,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
