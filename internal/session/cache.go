package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/cloudstok/flash-roulette-backend/internal/model"
)

const keyPrefix = "PL:"

// Cache is the external player-session store. Get returns (nil, nil) when no
// session exists for the connection. The cache gives no transactional
// guarantees; serializing read-modify-write cycles is the caller's job.
type Cache interface {
	Get(ctx context.Context, connID string) (*model.PlayerSession, error)
	Set(ctx context.Context, connID string, session *model.PlayerSession) error
	Delete(ctx context.Context, connID string) error
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string) (*RedisCache, error) {
	const op = "session.NewRedisCache"

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, connID string) (*model.PlayerSession, error) {
	const op = "session.RedisCache.Get"

	bs, err := c.client.Get(ctx, keyPrefix+connID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	session := &model.PlayerSession{}
	if err = json.Unmarshal(bs, session); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

func (c *RedisCache) Set(ctx context.Context, connID string, session *model.PlayerSession) error {
	const op = "session.RedisCache.Set"

	bs, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = c.client.Set(ctx, keyPrefix+connID, bs, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *RedisCache) Delete(ctx context.Context, connID string) error {
	const op = "session.RedisCache.Delete"

	if err := c.client.Del(ctx, keyPrefix+connID).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
