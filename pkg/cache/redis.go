package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-sales-service/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// RedisClient is a Store backed by Redis.
type RedisClient struct {
	Client *redis.Client
	logger logger.ZapLogger
}

// NewRedisClient connects and pings. On a failed ping the client is still
// returned together with the error so callers can decide whether to fall back.
func NewRedisClient(cfg *Config, log logger.ZapLogger) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	rc := NewRedisClientWithClient(client, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return rc, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rc, nil
}

func NewRedisClientWithClient(client *redis.Client, log logger.ZapLogger) *RedisClient {
	if log == nil {
		log = logger.NewNop()
	}
	return &RedisClient{Client: client, logger: log}
}

func (r *RedisClient) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("cache read error", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return val, true
}

func (r *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.Client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Warn("cache write error", zap.String("key", key), zap.Error(err))
	}
}

func (r *RedisClient) Delete(ctx context.Context, key string) {
	if err := r.Client.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("cache delete error", zap.String("key", key), zap.Error(err))
	}
}

func (r *RedisClient) Close() error {
	return r.Client.Close()
}

var _ Store = (*RedisClient)(nil)
