package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"beebee/utils"
)

type HealthHandler struct {
	cache    *redis.Client
	payments bool
	mail     bool
}

func NewHealthHandler(cache *redis.Client, payments, mail bool) *HealthHandler {
	return &HealthHandler{cache: cache, payments: payments, mail: mail}
}

func (h *HealthHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.CheckHealth(c.Request.Context(), h.cache, h.payments, h.mail))
}
