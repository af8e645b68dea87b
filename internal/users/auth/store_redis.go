// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vqduong/scorebook/internal/platform/constants"
)

// RedisSignupThrottleRepository implements [SignupThrottleRepository] using Redis.
type RedisSignupThrottleRepository struct {
	client *redis.Client
}

// NewSignupThrottleRepository creates a new Redis-backed SignupThrottleRepository.
func NewSignupThrottleRepository(client *redis.Client) *RedisSignupThrottleRepository {
	return &RedisSignupThrottleRepository{client: client}
}

/*
Increment bumps the confirmation-code counter for an email address.

Description: INCR followed by EXPIRE NX — the TTL is attached only when the
key is first created, so the window is fixed rather than sliding.

Parameters:
  - context: context.Context
  - email: string
  - window: time.Duration

Returns:
  - int64: Counter value after the increment
  - error: Connectivity failures
*/
func (repository *RedisSignupThrottleRepository) Increment(context context.Context, email string, window time.Duration) (int64, error) {

	// Key the counter by the normalized address
	key := constants.RedisPrefixSignupThrottle + strings.ToLower(email)

	// Bump the counter
	count, err := repository.client.Incr(context, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_signup_throttle_incr_failed: %w", err)
	}

	// Attach the window TTL only on first creation
	if err := repository.client.ExpireNX(context, key, window).Err(); err != nil {
		return 0, fmt.Errorf("redis_signup_throttle_expire_failed: %w", err)
	}

	return count, nil
}
