// Package cache keeps a Redis copy of the system configuration so batch runs
// do not hit the database for every employee.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/redis/go-redis/v9"
)

const settingsKey = "hris:system_settings"

// SettingCache serves attendance.SettingRepository from Redis and falls back
// to the wrapped repository on a miss. Redis failures are logged and never
// returned.
type SettingCache struct {
	rdb  *redis.Client
	next attendance.SettingRepository
	ttl  time.Duration
}

var _ attendance.SettingRepository = (*SettingCache)(nil)

func NewSettingCache(rdb *redis.Client, next attendance.SettingRepository, ttl time.Duration) *SettingCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SettingCache{rdb: rdb, next: next, ttl: ttl}
}

// GetAll implements attendance.SettingRepository.
func (c *SettingCache) GetAll(ctx context.Context) (map[string]string, error) {
	raw, err := c.rdb.Get(ctx, settingsKey).Result()
	switch {
	case err == nil:
		var values map[string]string
		if err := json.Unmarshal([]byte(raw), &values); err == nil {
			return values, nil
		}
		slog.Warn("discarding unreadable settings cache entry", "key", settingsKey)
	case !errors.Is(err, redis.Nil):
		slog.Warn("settings cache unavailable", "error", err)
	}

	values, err := c.next.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings for cache: %w", err)
	}
	if err := c.rdb.Set(ctx, settingsKey, payload, c.ttl).Err(); err != nil {
		slog.Warn("failed to populate settings cache", "error", err)
	}

	return values, nil
}

// Invalidate drops the cached copy. Call it after settings change.
func (c *SettingCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, settingsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate settings cache: %w", err)
	}
	return nil
}
