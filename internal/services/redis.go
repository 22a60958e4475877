package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const (
	dashboardCacheTTL = 5 * time.Minute
	expiringDocsTTL   = 12 * time.Hour
)

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// SetDashboardSummary caches the computed dashboard payload for a month
func SetDashboardSummary(ctx context.Context, month string, summary interface{}) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("dashboard:summary:%s", month)
	return RedisClient.Set(ctx, key, data, dashboardCacheTTL).Err()
}

// GetDashboardSummary retrieves a cached dashboard payload for a month.
// Returns redis.Nil error on cache miss.
func GetDashboardSummary(ctx context.Context, month string) (json.RawMessage, error) {
	key := fmt.Sprintf("dashboard:summary:%s", month)
	data, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// InvalidateDashboard drops every cached dashboard summary. Called after any
// trip or document write so reads never serve stale aggregates.
func InvalidateDashboard(ctx context.Context) error {
	iter := RedisClient.Scan(ctx, 0, "dashboard:summary:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := RedisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// SetExpiringDocuments stores the latest expiring-documents snapshot produced
// by the alert job
func SetExpiringDocuments(ctx context.Context, docs interface{}) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, "documents:expiring", data, expiringDocsTTL).Err()
}

// GetExpiringDocuments retrieves the expiring-documents snapshot.
// Returns redis.Nil error when no snapshot exists yet.
func GetExpiringDocuments(ctx context.Context) (json.RawMessage, error) {
	data, err := RedisClient.Get(ctx, "documents:expiring").Result()
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
