package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus reports which optional integrations are configured and
// whether the cache answers.
type HealthStatus struct {
	Status    string    `json:"status"`
	Payments  bool      `json:"payments"`
	Mail      bool      `json:"mail"`
	Cache     *bool     `json:"cache,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// CheckHealth builds a snapshot. A nil cache is reported as absent, not down.
func CheckHealth(ctx context.Context, cache *redis.Client, payments, mail bool) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Payments:  payments,
		Mail:      mail,
		CheckedAt: time.Now().UTC(),
	}
	if cache != nil {
		ctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		up := cache.Ping(ctx).Err() == nil
		status.Cache = &up
		if !up {
			status.Status = "degraded"
		}
	}
	return status
}
