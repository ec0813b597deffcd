package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/schoolhealth-backend/internal/access"
	"github.com/stemsi/schoolhealth-backend/internal/middleware"
	"github.com/stemsi/schoolhealth-backend/internal/model"
	"github.com/stemsi/schoolhealth-backend/internal/response"
	"github.com/stemsi/schoolhealth-backend/internal/validator"
)

const (
	checkModeAny = "any"
	checkModeAll = "all"
)

// AccessHandler exposes the permission catalog and the role and route policies.
type AccessHandler struct{}

// NewAccessHandler creates a new AccessHandler.
func NewAccessHandler() *AccessHandler {
	return &AccessHandler{}
}

// ListPermissions godoc
// GET /api/v1/access/permissions
// Returns the permission catalog with descriptions and groups. Granted flags
// reflect the caller's role.
func (h *AccessHandler) ListPermissions(c *gin.Context) {
	var role model.Role
	if identity := middleware.GetSession(c).Identity(); identity != nil {
		role = identity.Role
	}
	response.Success(c, http.StatusOK, gin.H{
		"permissions": access.Catalog(role),
	})
}

// ListRoles godoc
// GET /api/v1/access/roles
// Returns every role with its label and granted permissions.
func (h *AccessHandler) ListRoles(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"roles": access.Roles(),
	})
}

// Check godoc
// POST /api/v1/access/check
// Reports whether the current session holds any (default) or all of the
// given permissions.
func (h *AccessHandler) Check(c *gin.Context) {
	var req model.AccessCheckRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	perms := make([]model.Permission, 0, len(req.Permissions))
	for _, raw := range req.Permissions {
		perms = append(perms, model.Permission(raw))
	}

	mode := req.Mode
	if mode == "" {
		mode = checkModeAny
	}

	sess := middleware.GetSession(c)
	var allowed bool
	if mode == checkModeAll {
		allowed = sess.CheckAllPermissions(perms)
	} else {
		allowed = sess.CheckAnyPermission(perms)
	}

	response.Success(c, http.StatusOK, gin.H{
		"allowed":     allowed,
		"mode":        mode,
		"permissions": perms,
	})
}

// CheckRoute godoc
// GET /api/v1/access/route?path=/x
// Reports whether the current session may open path and what guards it.
func (h *AccessHandler) CheckRoute(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"path": "path is a required field",
		})
		return
	}

	required, mapped := access.RequiredPermissions(path)
	if required == nil {
		required = []model.Permission{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"path":     path,
		"allowed":  middleware.GetSession(c).CanAccessRoute(path),
		"mapped":   mapped,
		"required": required,
	})
}
