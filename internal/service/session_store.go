package service

import (
	"context"
	"sync"
	"time"

	"github.com/stemsi/schoolhealth-backend/internal/model"
)

// SessionStore keeps the identity bound to each session id.
type SessionStore interface {
	// Get returns ErrSessionNotFound for unknown or expired sessions.
	Get(ctx context.Context, sessionID string) (*model.Identity, error)
	// Save binds identity to sessionID, replacing any previous binding.
	Save(ctx context.Context, sessionID string, identity model.Identity, ttl time.Duration) error
	// Delete removes the binding. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error
}

type memoryEntry struct {
	identity  model.Identity
	expiresAt time.Time
}

// MemorySessionStore is a process-local SessionStore.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (m *MemorySessionStore) Get(ctx context.Context, sessionID string) (*model.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.sessions, sessionID)
		return nil, ErrSessionNotFound
	}
	identity := entry.identity
	return &identity, nil
}

func (m *MemorySessionStore) Save(ctx context.Context, sessionID string, identity model.Identity, ttl time.Duration) error {
	entry := memoryEntry{identity: identity}
	m.mu.Lock()
	defer m.mu.Unlock()
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.sessions[sessionID] = entry
	return nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops expired sessions.
func (m *MemorySessionStore) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, entry := range m.sessions {
		if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
			delete(m.sessions, id)
		}
	}
}

// StartSweeper runs Sweep every interval until ctx is done.
func (m *MemorySessionStore) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
