package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staffdesk/pkg/config"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	redis  redis.UniversalClient
	prefix string
}

func newRedisStore(cfg config.IConfig) (*redisStore, error) {
	var (
		prefix  = cfg.GetString("redis.prefix")
		timeout = 5 * time.Second
	)
	if prefix == "" {
		prefix = "staffdesk"
	}

	connOpt := redis.UniversalOptions{
		Addrs:       cfg.GetStringSlice("redis.addrs"),
		Password:    cfg.GetString("redis.password"),
		DB:          cfg.GetInt("redis.db"),
		DialTimeout: timeout,
	}

	conn := redis.NewUniversalClient(&connOpt)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if cmd := conn.Ping(ctx); cmd.Err() != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", cmd.Err())
	}

	return &redisStore{redis: conn, prefix: prefix}, nil
}

func (s *redisStore) getPrefixedKey(key string) string {
	return s.prefix + "." + key
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.redis.Get(ctx, s.getPrefixedKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get key: %w", err)
	}
	return value, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value string) error {
	// sessions live until logout, so no TTL
	if err := s.redis.Set(ctx, s.getPrefixedKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key: %w", err)
	}
	return nil
}

func (s *redisStore) Remove(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, s.getPrefixedKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return nil
}
