package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"beebee/middleware"
)

// getLogger retrieves the request-scoped Zap logger from the Gin context,
// falling back to the global logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(middleware.LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.L()
}
