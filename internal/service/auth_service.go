package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolhealth-backend/internal/config"
	"github.com/stemsi/schoolhealth-backend/internal/model"
)

// Claims is the payload of a session token. The token only names the
// session; the identity itself lives in the SessionStore.
type Claims struct {
	jwt.RegisteredClaims
	Role model.Role `json:"role"`
}

// SessionID returns the id of the session the token refers to.
func (c *Claims) SessionID() string { return c.ID }

// AuthService opens, resolves and closes sessions on behalf of HTTP clients.
type AuthService struct {
	cfg    *config.Config
	auth   Authenticator
	store  SessionStore
	events EventPublisher
	log    zerolog.Logger
	now    func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, auth Authenticator, store SessionStore, events EventPublisher, log zerolog.Logger) *AuthService {
	return &AuthService{
		cfg:    cfg,
		auth:   auth,
		store:  store,
		events: events,
		log:    log.With().Str("component", "auth_service").Logger(),
		now:    time.Now,
	}
}

// Authenticator returns the credential checker backing every session.
func (s *AuthService) Authenticator() Authenticator { return s.auth }

// Login authenticates the credentials and binds the identity to a session.
// An empty sessionID opens a new session; a non-empty one rebinds that
// session, with the last successful login winning.
func (s *AuthService) Login(ctx context.Context, sessionID, email, password string) (string, *Session, error) {
	sess := NewSession(s.auth)
	ok, err := sess.Login(ctx, email, password)
	if err != nil {
		return "", nil, fmt.Errorf("authenticate: %w", err)
	}
	if !ok {
		s.log.Info().Msg("Login rejected")
		return "", nil, ErrInvalidCredentials
	}

	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	identity := sess.Identity()

	if err := s.store.Save(ctx, sessionID, *identity, s.cfg.SessionTTL); err != nil {
		return "", nil, err
	}

	token, err := s.signToken(sessionID, identity)
	if err != nil {
		_ = s.store.Delete(ctx, sessionID)
		return "", nil, err
	}

	s.events.Publish(SessionEvent{Type: SessionEventLogin, SessionID: sessionID, Identity: identity})
	s.log.Info().
		Str("session_id", sessionID).
		Str("user_id", identity.ID).
		Str("role", string(identity.Role)).
		Msg("Login succeeded")

	return token, sess, nil
}

// Logout unbinds the session. Logging out an unknown or already closed
// session succeeds.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.events.Publish(SessionEvent{Type: SessionEventLogout, SessionID: sessionID})
	s.log.Info().Str("session_id", sessionID).Msg("Logout")
	return nil
}

// Resolve validates a session token and returns the session it refers to.
func (s *AuthService) Resolve(ctx context.Context, tokenStr string) (*Session, *Claims, error) {
	claims, err := s.ValidateToken(tokenStr)
	if err != nil {
		return nil, nil, err
	}

	identity, err := s.store.Get(ctx, claims.SessionID())
	if err != nil {
		return nil, claims, err
	}
	return RestoreSession(s.auth, identity), claims, nil
}

// ValidateToken parses and validates a session token, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *AuthService) signToken(sessionID string, identity *model.Identity) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionTTL)),
		},
		Role: identity.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// IsSessionGone reports whether err means the client must log in again.
func IsSessionGone(err error) bool {
	return errors.Is(err, ErrTokenInvalid) || errors.Is(err, ErrSessionNotFound)
}
