package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ws "github.com/stemsi/schoolhealth-backend/internal/websocket"
)

func dialStream(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/v1/session/stream?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) ws.SnapshotResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var snap ws.SnapshotResponse
	require.NoError(t, conn.ReadJSON(&snap))
	return snap
}

func waitForSubscriber(t *testing.T, s *testServer, token string) {
	t.Helper()
	claims, err := s.auth.ValidateToken(token)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return s.events.Subscribers(claims.SessionID()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSessionStream_SnapshotAndPing(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.engine)
	defer srv.Close()

	token := s.login(t, "parent@gmail.com", "parent123")
	conn := dialStream(t, srv, token)

	snap := readSnapshot(t, conn)
	assert.Equal(t, ws.EventSnapshot, snap.Event)
	assert.True(t, snap.Authenticated)
	assert.Equal(t, "Phụ huynh", snap.RoleLabel)
	assert.Len(t, snap.Permissions, 6)

	require.NoError(t, conn.WriteJSON(ws.RequestEnvelope{Action: ws.ActionPing}))
	var pong ws.PongResponse
	require.NoError(t, conn.ReadJSON(&pong))
	assert.Equal(t, ws.EventPong, pong.Event)
}

func TestSessionStream_LoginAndLogoutEvents(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.engine)
	defer srv.Close()

	token := s.login(t, "teacher@school.edu.vn", "teacher123")
	conn := dialStream(t, srv, token)
	readSnapshot(t, conn)
	waitForSubscriber(t, s, token)

	// Rebinding the session pushes the new identity.
	code, _ := s.do(t, http.MethodPost, "/api/v1/auth/login", token, map[string]string{
		"email": "admin@school.edu.vn", "password": "admin123",
	})
	require.Equal(t, http.StatusOK, code)

	snap := readSnapshot(t, conn)
	assert.Equal(t, ws.EventLogin, snap.Event)
	require.NotNil(t, snap.User)
	assert.Equal(t, "admin@school.edu.vn", snap.User.Email)
	assert.Len(t, snap.Permissions, 14)

	code, _ = s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, code)

	var out ws.LogoutResponse
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, ws.EventLogout, out.Event)
}

func TestSessionStream_RequiresSession(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.engine)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/v1/session/stream"
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
