package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	maxLoginAttempts = 5
	loginWindow      = 15 * time.Minute
)

// CheckAndCountLoginAttempt menghitung percobaan login per identitas
// (gabungan email dan IP). Tanpa redis, pembatasan dilewati.
func CheckAndCountLoginAttempt(ctx context.Context, rdb *redis.Client, identity string) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:login:%s", identity)

	attempts, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	if attempts == 1 {
		rdb.Expire(ctx, key, loginWindow)
	}

	return attempts <= maxLoginAttempts, nil
}

// ClearLoginAttempts menghapus hitungan setelah login berhasil.
func ClearLoginAttempts(ctx context.Context, rdb *redis.Client, identity string) error {
	if rdb == nil {
		return nil
	}
	key := fmt.Sprintf("rate_limit:login:%s", identity)
	_, err := rdb.Del(ctx, key).Result()
	return err
}
