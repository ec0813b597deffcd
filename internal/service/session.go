package service

import (
	"context"
	"errors"
	"sync"

	"github.com/stemsi/schoolhealth-backend/internal/access"
	"github.com/stemsi/schoolhealth-backend/internal/model"
)

// Session binds the access decision functions to whoever is logged in.
// It holds a single identity slot; the zero state is unauthenticated.
type Session struct {
	auth Authenticator

	mu       sync.RWMutex
	identity *model.Identity
}

// NewSession creates an unauthenticated session.
func NewSession(auth Authenticator) *Session {
	return &Session{auth: auth}
}

// RestoreSession creates a session already bound to identity.
// A nil identity gives an unauthenticated session.
func RestoreSession(auth Authenticator, identity *model.Identity) *Session {
	s := &Session{auth: auth}
	if identity != nil {
		id := *identity
		s.identity = &id
	}
	return s
}

// Login checks the credentials and, on a match, replaces the current identity.
// Concurrent logins on one session resolve last-write-wins. A credential
// mismatch returns false with a nil error and leaves the session unchanged;
// other errors come from the authenticator itself.
func (s *Session) Login(ctx context.Context, email, password string) (bool, error) {
	identity, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return false, nil
		}
		return false, err
	}

	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()
	return true, nil
}

// Logout clears the identity. Calling it on a logged-out session is a no-op.
func (s *Session) Logout() {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()
}

// Identity returns a copy of the current identity, or nil.
func (s *Session) Identity() *model.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// IsAuthenticated reports whether an identity is set.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

func (s *Session) role() (model.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return "", false
	}
	return s.identity.Role, true
}

// CheckPermission reports whether the current identity holds p.
func (s *Session) CheckPermission(p model.Permission) bool {
	role, ok := s.role()
	if !ok {
		return false
	}
	return access.HasPermission(role, p)
}

// CheckAnyPermission reports whether the current identity holds any of perms.
func (s *Session) CheckAnyPermission(perms []model.Permission) bool {
	role, ok := s.role()
	if !ok {
		return false
	}
	return access.HasAnyPermission(role, perms)
}

// CheckAllPermissions reports whether the current identity holds all of perms.
func (s *Session) CheckAllPermissions(perms []model.Permission) bool {
	role, ok := s.role()
	if !ok {
		return false
	}
	return access.HasAllPermissions(role, perms)
}

// CanAccessRoute denies every route to an unauthenticated session, mapped or
// not, and otherwise defers to the route policy.
func (s *Session) CanAccessRoute(path string) bool {
	role, ok := s.role()
	if !ok {
		return false
	}
	return access.CanAccessRoute(role, path)
}

// Permissions returns the permissions of the current identity in catalog order.
func (s *Session) Permissions() []model.Permission {
	role, ok := s.role()
	if !ok {
		return nil
	}
	set, err := access.PermissionsFor(role)
	if err != nil {
		return nil
	}
	return set.Slice()
}
