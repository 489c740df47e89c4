package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOTPRepository stores password-reset codes in Redis.
//
// Each code lives under its own key so several codes can be valid for the
// same email at once; a per-email index set makes "delete everything for
// this email" possible after a successful reset. The key TTL is what
// enforces the validity window the email promises the user.
type RedisOTPRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisOTPRepository(client *redis.Client, ttl time.Duration) *RedisOTPRepository {
	return &RedisOTPRepository{
		client: client,
		ttl:    ttl,
	}
}

// otpKey generates the Redis key for a single email+code pair
func otpKey(email, code string) string {
	return fmt.Sprintf("password_otp:%s:%s", email, code)
}

// otpIndexKey generates the Redis key for the per-email code index
func otpIndexKey(email string) string {
	return fmt.Sprintf("password_otp_index:%s", email)
}

// Store persists a new code for the email with the configured TTL.
// Earlier codes for the same email stay live.
func (r *RedisOTPRepository) Store(ctx context.Context, email, code string) error {
	pipe := r.client.Pipeline()

	pipe.Set(ctx, otpKey(email, code), time.Now().Unix(), r.ttl)

	// Index entries outlive their code keys at worst by one TTL; DeleteAll
	// tolerates members whose code key has already expired
	pipe.SAdd(ctx, otpIndexKey(email), code)
	pipe.Expire(ctx, otpIndexKey(email), r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	return nil
}

// Exists reports whether the exact email+code pair is live. It does not
// consume the code; only DeleteAll removes codes before their TTL.
func (r *RedisOTPRepository) Exists(ctx context.Context, email, code string) (bool, error) {
	n, err := r.client.Exists(ctx, otpKey(email, code)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check otp: %w", err)
	}

	return n > 0, nil
}

// DeleteAll removes every live code for the email, regardless of which
// code authorized the reset.
func (r *RedisOTPRepository) DeleteAll(ctx context.Context, email string) error {
	indexKey := otpIndexKey(email)

	codes, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list otps: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, code := range codes {
		pipe.Del(ctx, otpKey(email, code))
	}
	pipe.Del(ctx, indexKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete otps: %w", err)
	}

	return nil
}
