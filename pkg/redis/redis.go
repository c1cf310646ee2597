package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/ikkim/flyer-backend/config"
	"github.com/ikkim/flyer-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// New opens a Redis client and verifies it with PING.
func New(cfg *config.RedisConfig) (*redis.Client, error) {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return client, nil
}

// SessionRevoker keeps revoked admin session IDs until their token would expire anyway.
type SessionRevoker struct {
	client *redis.Client
	prefix string
}

func NewSessionRevoker(client *redis.Client, prefix string) *SessionRevoker {
	return &SessionRevoker{client: client, prefix: prefix}
}

func (r *SessionRevoker) key(sessionID string) string {
	return fmt.Sprintf("%srevoked:%s", r.prefix, sessionID)
}

// Revoke marks a session as logged out for the given remaining lifetime.
func (r *SessionRevoker) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	logger.Debug("Revoking admin session", map[string]interface{}{
		"session_id": sessionID,
		"ttl":        ttl.String(),
	})
	if err := r.client.Set(ctx, r.key(sessionID), "revoked", ttl).Err(); err != nil {
		logger.Error("Failed to revoke admin session", err, nil)
		return err
	}
	return nil
}

func (r *SessionRevoker) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check admin session revocation", err, nil)
		return false, err
	}
	return val == "revoked", nil
}
