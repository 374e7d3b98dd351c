package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminSessionCookie is the cookie that carries the admin session token.
const AdminSessionCookie = "admin_session"

// SessionValidator checks a signed admin session token.
type SessionValidator interface {
	Validate(token string) error
}

// AdminSessionMiddleware rejects requests without a valid admin session cookie.
func AdminSessionMiddleware(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AdminSessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := sessions.Validate(token); err != nil {
			loggerFrom(c).Warn("Rejected admin session", zap.String("ip", getClientIP(c)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
