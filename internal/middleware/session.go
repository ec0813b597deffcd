package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/schoolhealth-backend/internal/response"
	"github.com/stemsi/schoolhealth-backend/internal/service"
)

const (
	// ContextKeySession is the Gin context key for the resolved *service.Session.
	ContextKeySession = "session"
	// ContextKeyClaims is the Gin context key for the session token claims.
	ContextKeyClaims = "claims"
)

var errNoToken = errors.New("authorization header or token query required")

// RequireSession resolves the session token and rejects the request when the
// caller is not logged in.
func RequireSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, claims, err := resolve(c, authService)
		if err != nil {
			switch {
			case errors.Is(err, errNoToken):
				response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			case errors.Is(err, service.ErrSessionNotFound):
				response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionExpired)
			case errors.Is(err, service.ErrTokenInvalid):
				response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			default:
				_ = c.Error(err)
				response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			}
			return
		}

		c.Set(ContextKeySession, sess)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// OptionalSession attaches the session when a valid token is present and
// otherwise lets the request through unauthenticated. Claims of a correctly
// signed token are attached even when its session is gone.
func OptionalSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, claims, err := resolve(c, authService)
		if claims != nil {
			c.Set(ContextKeyClaims, claims)
		}
		if err == nil {
			c.Set(ContextKeySession, sess)
		}
		c.Next()
	}
}

// GetSession returns the session attached to the request. Requests without
// one get an unauthenticated session, so every check on it is a denial.
func GetSession(c *gin.Context) *service.Session {
	if val, ok := c.Get(ContextKeySession); ok {
		if sess, ok := val.(*service.Session); ok {
			return sess
		}
	}
	return service.NewSession(nil)
}

// GetClaims retrieves the session token claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func resolve(c *gin.Context, authService *service.AuthService) (*service.Session, *service.Claims, error) {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		return nil, nil, errNoToken
	}
	return authService.Resolve(c.Request.Context(), tokenStr)
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	// Fallback for WebSocket upgrades, which cannot send headers from browsers.
	return c.Query("token")
}
