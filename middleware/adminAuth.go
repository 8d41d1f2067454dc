package middleware

import (
	"errors"
	"net/http"
	"strings"

	"bookingadmin/i18n"
	"bookingadmin/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminKey is the context key holding the authenticated admin email.
const AdminKey = "adminEmail"

// bearerToken reads the Authorization header, falling back to ?token= for websocket
// upgrades where browsers cannot set headers.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.Query("token")
}

func JWTAuthAdminMiddleware(authSvc auth.AuthService, messages *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := Locale(c)
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   messages.T(locale, "errors.unauthorized", nil),
				"message": "missing or invalid Authorization header",
			})
			return
		}

		admin, err := authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrSessionExpired) {
				zap.L().Debug("Admin token rejected", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   messages.T(locale, "errors.unauthorized", nil),
				"message": err.Error(),
			})
			return
		}

		c.Set(AdminKey, admin)
		c.Set("adminToken", token)
		c.Next()
	}
}
