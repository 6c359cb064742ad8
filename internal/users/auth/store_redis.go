// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kanoon/kanoon/internal/platform/constants"
)

// RedisThrottle implements [Throttle] with one expiring counter per login.
type RedisThrottle struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewRedisThrottle blocks a login once maxAttempts failures happen within window.
func NewRedisThrottle(client *redis.Client, maxAttempts int, window time.Duration) *RedisThrottle {
	return &RedisThrottle{client: client, maxAttempts: int64(maxAttempts), window: window}
}

func throttleKey(login string) string {
	return constants.RedisPrefixLoginFailures + login
}

// Blocked reports whether the failure counter reached the limit.
func (throttle *RedisThrottle) Blocked(ctx context.Context, login string) (bool, error) {
	count, err := throttle.client.Get(ctx, throttleKey(login)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_login_throttle_get_failed: %w", err)
	}
	return count >= throttle.maxAttempts, nil
}

/*
Fail increments the counter. The window starts at the first failure and is
not extended by later ones.
*/
func (throttle *RedisThrottle) Fail(ctx context.Context, login string) error {
	key := throttleKey(login)

	pipe := throttle.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, throttle.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis_login_throttle_incr_failed: %w", err)
	}
	return nil
}

// Reset forgets the failures of login.
func (throttle *RedisThrottle) Reset(ctx context.Context, login string) error {
	if err := throttle.client.Del(ctx, throttleKey(login)).Err(); err != nil {
		return fmt.Errorf("redis_login_throttle_del_failed: %w", err)
	}
	return nil
}
