package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolhealth-backend/internal/model"
	"github.com/stemsi/schoolhealth-backend/internal/response"
)

const contactAdminHint = "Vui lòng liên hệ quản trị viên để được cấp quyền phù hợp."

// RequirePermission checks that the current session holds the permission.
func RequirePermission(p model.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if !sess.IsAuthenticated() {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}
		if !sess.CheckPermission(p) {
			response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}
		c.Next()
	}
}

// RequireAnyPermission checks that the current session holds at least one of
// the permissions. An empty list admits nobody.
func RequireAnyPermission(perms ...model.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if !sess.IsAuthenticated() {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}
		if !sess.CheckAnyPermission(perms) {
			response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}
		c.Next()
	}
}

// RequireRoute guards a handler with the route policy entry for path. A denial
// names the caller's role and the path and points them to an administrator.
func RequireRoute(path string, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "route_guard").Logger()
	return func(c *gin.Context) {
		sess := GetSession(c)
		identity := sess.Identity()
		if identity == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if !sess.CanAccessRoute(path) {
			log.Warn().
				Str("user_id", identity.ID).
				Str("role", string(identity.Role)).
				Str("route", path).
				Msg("Route access denied")

			response.AbortFailWithFields(c, http.StatusForbidden, response.ErrRouteAccessDenied, map[string]string{
				"role": identity.Role.Label(),
				"path": path,
				"hint": contactAdminHint,
			})
			return
		}
		c.Next()
	}
}
