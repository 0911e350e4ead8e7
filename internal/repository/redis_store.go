package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "willspark:local:"

type redisLocalStore struct {
	client *redis.Client
}

// NewRedisClient connects to Redis and pings it with a short timeout. It
// returns nil when the server cannot be reached so callers can fall back.
func NewRedisClient(addr, password string, dbNum int) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       dbNum,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil
	}
	return client
}

// NewRedisLocalStore keeps local entries in Redis so several machines can share
// one signed-in session.
func NewRedisLocalStore(client *redis.Client) LocalStore {
	return &redisLocalStore{client: client}
}

func (s *redisLocalStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %q from redis: %w", key, err)
	}
	return v, true, nil
}

func (s *redisLocalStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("write %q to redis: %w", key, err)
	}
	return nil
}

func (s *redisLocalStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("remove %q from redis: %w", key, err)
	}
	return nil
}
