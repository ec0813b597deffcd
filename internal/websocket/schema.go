package websocket

import (
	"time"

	"github.com/stemsi/schoolhealth-backend/internal/access"
	"github.com/stemsi/schoolhealth-backend/internal/model"
)

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing    Action = "ping"
	ActionRefresh Action = "refresh"
)

// RequestEnvelope is the only client message shape on the session stream.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventSnapshot Event = "snapshot"
	EventLogin    Event = "login"
	EventLogout   Event = "logout"
	EventError    Event = "error"
	EventPong     Event = "pong"
)

// SnapshotResponse describes what the session may do right now. It is sent
// on connect, on refresh and after every login on the session.
type SnapshotResponse struct {
	Event         Event              `json:"event"`
	Authenticated bool               `json:"authenticated"`
	User          *model.Identity    `json:"user,omitempty"`
	RoleLabel     string             `json:"role_label,omitempty"`
	Permissions   []model.Permission `json:"permissions"`
	Navigation    []access.NavItem   `json:"navigation"`
	At            time.Time          `json:"at"`
}

// LogoutResponse tells the client its session was closed.
type LogoutResponse struct {
	Event Event     `json:"event"`
	At    time.Time `json:"at"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
