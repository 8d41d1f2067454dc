package handlers

import (
	"net/http"

	"bookingadmin/models"
	"bookingadmin/services/ordering"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *CatalogHandler) ListServices(c *gin.Context) {
	list, err := h.Catalog.ListServices(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "services.fetchError", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) SaveService(c *gin.Context) {
	var in models.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err)
		return
	}
	list, err := h.Catalog.SaveService(c.Request.Context(), in)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "services.saveError", err, zap.String("serviceID", in.ID))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id := c.Param("id")
	list, err := h.Catalog.DeleteService(c.Request.Context(), id)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "services.deleteError", err, zap.String("serviceID", id))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) SetServiceActive(c *gin.Context) {
	id := c.Param("id")
	var body activeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	list, err := h.Catalog.SetServiceActive(c.Request.Context(), id, *body.Active)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "services.saveError", err, zap.String("serviceID", id))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) MoveService(c *gin.Context) {
	id := c.Param("id")
	var body moveBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	dir, err := ordering.ParseDirection(body.Direction)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	list, err := h.Catalog.MoveService(c.Request.Context(), id, dir)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "services.moveError", err, zap.String("serviceID", id))
		return
	}
	c.JSON(http.StatusOK, list)
}
