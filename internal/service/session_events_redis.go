package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolhealth-backend/internal/config"
)

const publishTimeout = 2 * time.Second

// RedisEventPublisher broadcasts session events on a Redis channel so every
// server instance can feed its own SessionEvents hub.
type RedisEventPublisher struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisEventPublisher creates a publisher on config.WorkerKey.SessionEventsChannel.
func NewRedisEventPublisher(rdb *redis.Client, log zerolog.Logger) *RedisEventPublisher {
	return &RedisEventPublisher{
		rdb: rdb,
		log: log.With().Str("component", "session_event_publisher").Logger(),
	}
}

// Publish implements EventPublisher. Delivery is best effort.
func (p *RedisEventPublisher) Publish(ev SessionEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Error().Err(err).Msg("Marshal session event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.rdb.Publish(ctx, config.WorkerKey.SessionEventsChannel, payload).Err(); err != nil {
		p.log.Error().Err(err).Str("session_id", ev.SessionID).Msg("Publish session event")
	}
}
