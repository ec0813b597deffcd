package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolhealth-backend/internal/config"
	"github.com/stemsi/schoolhealth-backend/internal/service"
)

// SessionRelayWorker feeds session events published on Redis into the local
// SessionEvents hub, so a WebSocket stream sees logins and logouts made
// through any server instance.
type SessionRelayWorker struct {
	rdb *redis.Client
	hub *service.SessionEvents
	log zerolog.Logger
}

// NewSessionRelayWorker creates a new SessionRelayWorker.
func NewSessionRelayWorker(rdb *redis.Client, hub *service.SessionEvents, log zerolog.Logger) *SessionRelayWorker {
	return &SessionRelayWorker{
		rdb: rdb,
		hub: hub,
		log: log.With().Str("component", "session_relay_worker").Logger(),
	}
}

// Start begins the relay loop. Call in a goroutine.
func (w *SessionRelayWorker) Start(ctx context.Context) {
	sub := w.rdb.Subscribe(ctx, config.WorkerKey.SessionEventsChannel)
	defer sub.Close()

	w.log.Info().Msg("Worker started")
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				w.log.Warn().Msg("Subscription closed")
				return
			}
			w.relay(msg.Payload)
		}
	}
}

func (w *SessionRelayWorker) relay(payload string) {
	ev, err := decodeSessionEvent(payload)
	if err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}
	w.hub.Publish(ev)
}

func decodeSessionEvent(payload string) (service.SessionEvent, error) {
	var ev service.SessionEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return ev, err
	}
	return ev, nil
}
