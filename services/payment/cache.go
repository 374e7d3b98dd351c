package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"beebee/models"
)

// RedisLinkCache stores payment link URLs keyed by invoice, type and amount.
// Cache failures are logged and otherwise ignored.
type RedisLinkCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisLinkCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisLinkCache {
	return &RedisLinkCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisLinkCache) Get(ctx context.Context, key string) (string, bool) {
	url, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.Warn("payment link cache read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return url, true
}

func (c *RedisLinkCache) Set(ctx context.Context, key, url string) {
	if err := c.client.Set(ctx, key, url, c.ttl).Err(); err != nil {
		c.logger.Warn("payment link cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(req models.PaymentLinkRequest) string {
	return fmt.Sprintf("paylink:%s:%s:%d", req.InvoiceNumber, req.Kind, req.AmountCents)
}
