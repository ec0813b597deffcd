package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/stemsi/schoolhealth-backend/internal/model"
)

func bindBody(t *testing.T, body string, dst interface{}) map[string]string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Setup()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return Bind(c, dst)
}

func TestBind_AccessCheckRequest(t *testing.T) {
	var req model.AccessCheckRequest
	fields := bindBody(t, `{"permissions":["manage_users","view_dashboard"],"mode":"all"}`, &req)

	assert.Nil(t, fields)
	assert.Equal(t, []string{"manage_users", "view_dashboard"}, req.Permissions)
	assert.Equal(t, "all", req.Mode)
}

func TestBind_RejectsUnknownPermission(t *testing.T) {
	var req model.AccessCheckRequest
	fields := bindBody(t, `{"permissions":["manage_users","MANAGE_USERS"]}`, &req)

	assert.Equal(t, "permissions[1] must be a known permission", fields["permissions[1]"])
}

func TestBind_RejectsBadMode(t *testing.T) {
	var req model.AccessCheckRequest
	fields := bindBody(t, `{"permissions":["manage_users"],"mode":"some"}`, &req)

	assert.Contains(t, fields, "mode")
}

func TestBind_LoginRequest(t *testing.T) {
	var req model.LoginRequest
	fields := bindBody(t, `{"email":"not-an-email"}`, &req)

	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestBind_MalformedJSON(t *testing.T) {
	var req model.LoginRequest
	fields := bindBody(t, `{"email":`, &req)

	assert.Contains(t, fields, "detail")
}

func TestRoleTag(t *testing.T) {
	type payload struct {
		Role string `json:"role" binding:"required,role"`
	}
	var ok payload
	assert.Nil(t, bindBody(t, `{"role":"teacher"}`, &ok))

	var bad payload
	fields := bindBody(t, `{"role":"principal"}`, &bad)
	assert.Equal(t, "role must be a known role", fields["role"])
}
