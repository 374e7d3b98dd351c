package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"beebee/middleware"
	"beebee/services/admin"
	"beebee/utils"
)

// AuthHandler gates the invoice builder behind the single admin password.
type AuthHandler struct {
	sessions     *admin.SessionManager
	secureCookie bool
}

func NewAuthHandler(sessions *admin.SessionManager, secureCookie bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, secureCookie: secureCookie}
}

// LoginHandler checks the password and sets the session cookie.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	token, err := h.sessions.Login(input.Password)
	switch {
	case errors.Is(err, admin.ErrAdminNotConfigured):
		utils.JSONError(c, http.StatusInternalServerError, "Admin not configured", "")
		return
	case errors.Is(err, admin.ErrInvalidPassword):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid password", "")
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "Authentication failed", err.Error())
		return
	}

	h.setCookie(c, token, int(h.sessions.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// VerifyHandler reports whether the caller holds a valid session.
func (h *AuthHandler) VerifyHandler(c *gin.Context) {
	token, err := c.Cookie(middleware.AdminSessionCookie)
	authenticated := err == nil && h.sessions.Validate(token) == nil
	c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
}

// LogoutHandler clears the session cookie.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminSessionCookie, value, maxAge, "/", "", h.secureCookie, true)
}
