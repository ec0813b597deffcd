package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolhealth-backend/internal/access"
	"github.com/stemsi/schoolhealth-backend/internal/response"
)

const pingTimeout = 2 * time.Second

// SystemHandler reports process health.
type SystemHandler struct {
	rdb            *redis.Client
	sessionBackend string
	startTime      time.Time
	log            zerolog.Logger
}

// NewSystemHandler creates a SystemHandler. rdb is nil when sessions are kept in memory.
func NewSystemHandler(rdb *redis.Client, sessionBackend string, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		rdb:            rdb,
		sessionBackend: sessionBackend,
		startTime:      time.Now(),
		log:            log.With().Str("component", "system_handler").Logger(),
	}
}

// Health godoc
// GET /health
// Reports uptime, the session backend and whether the policy tables are sound.
// Responds 503 when Redis backs the sessions and does not answer.
func (h *SystemHandler) Health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":          "ok",
		"uptime":          time.Since(h.startTime).Round(time.Second).String(),
		"go_version":      runtime.Version(),
		"goroutines":      runtime.NumGoroutine(),
		"session_backend": h.sessionBackend,
		"policy":          "ok",
	}

	if err := access.ValidatePolicy(); err != nil {
		h.log.Error().Err(err).Msg("Policy validation failed")
		body["policy"] = err.Error()
		body["status"] = "degraded"
		status = http.StatusServiceUnavailable
	}

	if h.rdb != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			h.log.Warn().Err(err).Msg("Redis ping failed")
			body["redis"] = "unreachable"
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
		} else {
			body["redis"] = "ok"
		}
	}

	response.Success(c, status, body)
}
