package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/schoolhealth-backend/internal/config"
	"github.com/stemsi/schoolhealth-backend/internal/model"
)

// RedisSessionStore keeps session identities in Redis so they survive
// restarts and are shared across instances.
type RedisSessionStore struct {
	rdb *redis.Client
}

// NewRedisSessionStore creates a RedisSessionStore.
func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (r *RedisSessionStore) Get(ctx context.Context, sessionID string) (*model.Identity, error) {
	raw, err := r.rdb.Get(ctx, config.CacheKey.SessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var identity model.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &identity, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, sessionID string, identity model.Identity, ttl time.Duration) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, config.CacheKey.SessionKey(sessionID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, config.CacheKey.SessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
