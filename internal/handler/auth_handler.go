package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/schoolhealth-backend/internal/access"
	"github.com/stemsi/schoolhealth-backend/internal/middleware"
	"github.com/stemsi/schoolhealth-backend/internal/model"
	"github.com/stemsi/schoolhealth-backend/internal/response"
	"github.com/stemsi/schoolhealth-backend/internal/service"
	"github.com/stemsi/schoolhealth-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// POST /api/v1/auth/login
// Validates email + password and binds the identity to a session. A request
// carrying a live session token rebinds that session instead of opening a new one.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var sessionID string
	if claims := middleware.GetClaims(c); claims != nil && middleware.GetSession(c).IsAuthenticated() {
		sessionID = claims.SessionID()
	}

	token, sess, err := h.authService.Login(c.Request.Context(), sessionID, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	identity := sess.Identity()
	response.Success(c, http.StatusOK, model.LoginResponse{
		Token:       token,
		User:        *identity,
		RoleLabel:   identity.Role.Label(),
		Permissions: sess.Permissions(),
	})
}

// Logout godoc
// POST /api/v1/auth/logout
// Closes the session named by the token. Logging out twice, or without a
// live session, still succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Success(c, http.StatusOK, gin.H{})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.SessionID()); err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the current identity with what it may do: granted permissions with
// descriptions, the full catalog with granted flags and the visible menu.
func (h *AuthHandler) Me(c *gin.Context) {
	sess := middleware.GetSession(c)
	identity := sess.Identity()
	if identity == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	granted := make([]access.CatalogEntry, 0)
	catalog := access.Catalog(identity.Role)
	for _, e := range catalog {
		if e.Granted {
			granted = append(granted, e)
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":        identity,
		"role_label":  identity.Role.Label(),
		"permissions": granted,
		"catalog":     catalog,
		"navigation":  access.VisibleNavigation(identity.Role),
	})
}
