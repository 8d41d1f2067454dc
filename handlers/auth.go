package handlers

import (
	"errors"
	"net/http"

	"bookingadmin/services/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	base
	Auth auth.AuthService
}

func NewAuthHandler(svc auth.AuthService, b base) *AuthHandler {
	return &AuthHandler{base: b, Auth: svc}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, err)
		return
	}

	token, err := h.Auth.Login(c.Request.Context(), body.Email, body.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": h.t(c, "auth.invalidCredentials", nil), "message": err.Error()})
		return
	}
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "auth.loginError", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresIn": int(auth.TokenLifetime.Seconds())})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), c.GetString("adminToken")); err != nil {
		h.fail(c, http.StatusUnauthorized, "errors.unauthorized", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.t(c, "auth.loggedOut", nil)})
}
