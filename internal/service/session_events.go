package service

import (
	"sync"
	"time"

	"github.com/stemsi/schoolhealth-backend/internal/model"
)

// SessionEventType names a session state transition.
type SessionEventType string

const (
	SessionEventLogin  SessionEventType = "login"
	SessionEventLogout SessionEventType = "logout"
)

// SessionEvent is pushed to subscribers of a session when its identity changes.
type SessionEvent struct {
	Type      SessionEventType `json:"type"`
	SessionID string           `json:"session_id"`
	Identity  *model.Identity  `json:"identity"`
	At        time.Time        `json:"at"`
}

const subscriberBuffer = 8

// SessionEvents fans session events out to per-session subscribers.
type SessionEvents struct {
	mu   sync.Mutex
	subs map[string]map[chan SessionEvent]struct{}
}

// NewSessionEvents creates an empty hub.
func NewSessionEvents() *SessionEvents {
	return &SessionEvents{subs: make(map[string]map[chan SessionEvent]struct{})}
}

// Subscribe registers for events of sessionID. The returned cancel func must
// be called once; it closes the channel.
func (h *SessionEvents) Subscribe(sessionID string) (<-chan SessionEvent, func()) {
	ch := make(chan SessionEvent, subscriberBuffer)

	h.mu.Lock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[chan SessionEvent]struct{})
	}
	h.subs[sessionID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[sessionID], ch)
			if len(h.subs[sessionID]) == 0 {
				delete(h.subs, sessionID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers ev to every subscriber of its session. Slow subscribers
// with a full buffer miss the event.
func (h *SessionEvents) Publish(ev SessionEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[ev.SessionID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers returns the number of subscribers for sessionID.
func (h *SessionEvents) Subscribers(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[sessionID])
}

// EventPublisher accepts session events for delivery to stream subscribers.
type EventPublisher interface {
	Publish(ev SessionEvent)
}
