package utils

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arenahub/event-dashboard-backend/config"
)

// NewRedisClient connects the optional read cache. A nil return means the
// cache is disabled, not that startup failed: the API serves straight from
// Postgres without it.
func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Println("ℹ️ REDIS_ADDR not set, event cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unreachable, event cache disabled: %v", err)
		return nil
	}

	log.Println("✅ Redis connected")
	return client
}
