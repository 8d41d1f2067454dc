package middleware

import (
	"bookingadmin/i18n"

	"github.com/gin-gonic/gin"
)

const localeKey = "locale"

// LocaleMiddleware picks the response language from ?lang=, then Accept-Language, then
// the configured default.
func LocaleMiddleware(messages *i18n.Catalog, defaultLocale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		prefs := make([]string, 0, 3)
		for _, p := range []string{c.Query("lang"), c.GetHeader("Accept-Language"), defaultLocale} {
			if p != "" {
				prefs = append(prefs, p)
			}
		}
		locale := i18n.Fallback
		if len(prefs) > 0 {
			locale = messages.Negotiate(prefs...)
		}
		c.Set(localeKey, locale)
		c.Header("Content-Language", locale)
		c.Next()
	}
}

// Locale returns the negotiated locale, or the fallback when the middleware did not run.
func Locale(c *gin.Context) string {
	if l := c.GetString(localeKey); l != "" {
		return l
	}
	return i18n.Fallback
}
