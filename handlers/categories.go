package handlers

import (
	"net/http"

	"bookingadmin/models"
	"bookingadmin/services/catalog"
	"bookingadmin/services/ordering"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the categories and services screens. Every write answers with
// the full list as re-read after the write.
type CatalogHandler struct {
	base
	Catalog catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService, b base) *CatalogHandler {
	return &CatalogHandler{base: b, Catalog: svc}
}

type activeBody struct {
	Active *bool `json:"active" binding:"required"`
}

type moveBody struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	list, err := h.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "categories.fetchError", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) SaveCategory(c *gin.Context) {
	var in models.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err)
		return
	}
	list, err := h.Catalog.SaveCategory(c.Request.Context(), in)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "categories.saveError", err, zap.String("categoryID", in.ID))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	list, err := h.Catalog.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "categories.deleteError", err, zap.String("categoryID", id))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) SetCategoryActive(c *gin.Context) {
	id := c.Param("id")
	var body activeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}
	list, err := h.Catalog.SetCategoryActive(c.Request.Context(), id, *body.Active)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "categories.saveError", err, zap.String("categoryID", id))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) MoveCategory(c *gin.Context) {
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
	list, err := h.Catalog.MoveCategory(c.Request.Context(), id, dir)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "categories.moveError", err, zap.String("categoryID", id))
		return
	}
	c.JSON(http.StatusOK, list)
}
