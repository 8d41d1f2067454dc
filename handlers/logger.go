package handlers

import (
	"errors"
	"net/http"

	"bookingadmin/database/docstore"
	"bookingadmin/i18n"
	"bookingadmin/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// base carries what every handler needs to log and answer in the caller's language.
type base struct {
	Logger   *zap.Logger
	Messages *i18n.Catalog
}

func (b base) t(c *gin.Context, key string, vars map[string]string) string {
	return b.Messages.T(middleware.Locale(c), key, vars)
}

// fail answers {"error": <translated key>, "message": err}. Missing documents map to 404;
// other errors keep the given status.
func (b base) fail(c *gin.Context, status int, key string, err error, fields ...zap.Field) {
	if errors.Is(err, docstore.ErrNotFound) {
		status = http.StatusNotFound
	}
	fields = append(fields, zap.String("path", c.FullPath()), zap.Error(err))
	if status >= http.StatusInternalServerError {
		b.Logger.Error(key, fields...)
	} else {
		b.Logger.Warn(key, fields...)
	}
	c.JSON(status, gin.H{
		"error":   b.t(c, key, nil),
		"message": err.Error(),
	})
}

// badRequest answers a bind or validation failure.
func (b base) badRequest(c *gin.Context, err error) {
	b.fail(c, http.StatusBadRequest, "errors.invalidRequest", err)
}
