package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolhealth-backend/internal/access"
	"github.com/stemsi/schoolhealth-backend/internal/middleware"
	"github.com/stemsi/schoolhealth-backend/internal/model"
	"github.com/stemsi/schoolhealth-backend/internal/response"
	"github.com/stemsi/schoolhealth-backend/internal/service"
	ws "github.com/stemsi/schoolhealth-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams session state changes to the browser.
type WSHandler struct {
	events   *service.SessionEvents
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(events *service.SessionEvents, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		events:   events,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// SessionStream godoc
// WS /ws/v1/session/stream?token=
// Sends a snapshot of the session's identity and permissions, then pushes a
// fresh snapshot on every login and a logout event when the session closes.
func (h *WSHandler) SessionStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	sess := middleware.GetSession(c)
	if claims == nil || !sess.IsAuthenticated() {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	sessionID := claims.SessionID()

	// Subscribe before upgrading so no event between snapshot and loop is lost.
	events, cancel := h.events.Subscribe(sessionID)
	defer cancel()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("session_id", sessionID).Logger()
	wsLog.Info().Msg("Session stream connected")

	identity := sess.Identity()
	if err := ws.WriteTyped(conn, snapshot(identity, time.Now().UTC())); err != nil {
		return
	}

	actions := make(chan ws.Action)
	done := make(chan struct{})
	quit := make(chan struct{})
	defer close(quit)
	go h.readLoop(conn, wsLog, actions, done, quit)

	for {
		select {
		case <-done:
			wsLog.Debug().Msg("Session stream closed")
			return

		case action := <-actions:
			var err error
			switch action {
			case ws.ActionPing:
				err = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			case ws.ActionRefresh:
				err = ws.WriteTyped(conn, snapshot(identity, time.Now().UTC()))
			default:
				err = ws.WriteError(conn, "unknown action: "+string(action))
			}
			if err != nil {
				return
			}

		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Type {
			case service.SessionEventLogin:
				identity = ev.Identity
				snap := snapshot(identity, ev.At)
				snap.Event = ws.EventLogin
				if err := ws.WriteTyped(conn, snap); err != nil {
					return
				}
			case service.SessionEventLogout:
				_ = ws.WriteTyped(conn, ws.LogoutResponse{Event: ws.EventLogout, At: ev.At})
				_ = ws.Close(conn, "session closed")
				wsLog.Info().Msg("Session stream ended by logout")
				return
			}
		}
	}
}

// readLoop forwards client actions until the connection fails.
func (h *WSHandler) readLoop(conn *websocket.Conn, log zerolog.Logger, actions chan<- ws.Action, done chan<- struct{}, quit <-chan struct{}) {
	defer close(done)
	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("Unexpected close")
			}
			return
		}
		select {
		case actions <- msg.Action:
		case <-quit:
			return
		}
	}
}

func snapshot(identity *model.Identity, at time.Time) ws.SnapshotResponse {
	snap := ws.SnapshotResponse{
		Event:       ws.EventSnapshot,
		Permissions: []model.Permission{},
		Navigation:  []access.NavItem{},
		At:          at,
	}
	if identity == nil {
		return snap
	}

	snap.Authenticated = true
	snap.User = identity
	snap.RoleLabel = identity.Role.Label()
	if set, err := access.PermissionsFor(identity.Role); err == nil {
		snap.Permissions = set.Slice()
	}
	snap.Navigation = access.VisibleNavigation(identity.Role)
	return snap
}
