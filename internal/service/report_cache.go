package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/redis/go-redis/v9"
)

const (
	statsCacheKey = "cache:reports:stats"
	statsCacheTTL = 5 * time.Minute
)

// GetCachedStats membaca statistik laporan dari redis. Cache miss atau redis
// yang tidak tersedia sama-sama mengembalikan nil tanpa error fatal.
func GetCachedStats(ctx context.Context, rdb *redis.Client) *dto.ReportStats {
	if rdb == nil {
		return nil
	}

	payload, err := rdb.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil
	}

	var stats dto.ReportStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil
	}
	return &stats
}

func SetCachedStats(ctx context.Context, rdb *redis.Client, stats *dto.ReportStats) {
	if rdb == nil || stats == nil {
		return
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	rdb.Set(ctx, statsCacheKey, payload, statsCacheTTL)
}

// InvalidateReportCache membuang cache statistik. Dipanggil tanpa syarat
// setelah setiap mutasi laporan yang berhasil.
func InvalidateReportCache(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, statsCacheKey)
}
