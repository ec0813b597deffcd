//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stemsi/schoolhealth-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBaseURL = "http://localhost:8080"

var (
	baseURL      string
	parentToken  string
	medicalToken string
	teacherToken string
	requestID    int
)

func TestMain(m *testing.M) {
	// Load .env if present (ignore error)
	_ = godotenv.Load("../../.env")

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	resp, err := get("/health", "")
	if err != nil {
		fmt.Printf("server not reachable at %s: %v\n", baseURL, err)
		os.Exit(1)
	}
	resp.Body.Close()

	os.Exit(m.Run())
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func TestE2EFlow(t *testing.T) {
	t.Run("Login", func(t *testing.T) {
		parentToken = login(t, "parent@gmail.com", "parent123")
		medicalToken = login(t, "medical@school.edu.vn", "medical123")
		teacherToken = login(t, "teacher@school.edu.vn", "teacher123")
	})

	t.Run("Me", func(t *testing.T) {
		status, body := call(t, http.MethodGet, "/api/v1/auth/me", parentToken, nil)
		require.Equal(t, http.StatusOK, status)

		var me struct {
			RoleLabel string `json:"role_label"`
		}
		require.NoError(t, json.Unmarshal(body.Data, &me))
		assert.Equal(t, "Phụ huynh", me.RoleLabel)
	})

	t.Run("RouteDenied", func(t *testing.T) {
		status, body := call(t, http.MethodGet, "/api/v1/students/health", teacherToken, nil)
		require.Equal(t, http.StatusForbidden, status)
		require.NotNil(t, body.Error)
		assert.Equal(t, "ROUTE_ACCESS_DENIED", body.Error.Code)
	})

	t.Run("ParentSubmitsMedicine", func(t *testing.T) {
		status, body := call(t, http.MethodPost, "/api/v1/medicine/requests", parentToken, model.SubmitMedicineRequest{
			StudentID:    1,
			MedicineName: "Paracetamol",
			Dosage:       "250mg",
			Frequency:    "2 lần/ngày",
			Duration:     "3 ngày",
		})
		require.Equal(t, http.StatusCreated, status)

		var created struct {
			Request model.MedicineRequest `json:"request"`
		}
		require.NoError(t, json.Unmarshal(body.Data, &created))
		assert.Equal(t, model.MedicineRequestPending, created.Request.Status)
		requestID = created.Request.ID
	})

	t.Run("MedicalReviews", func(t *testing.T) {
		require.NotZero(t, requestID)
		path := fmt.Sprintf("/api/v1/medicine/requests/%d", requestID)

		status, _ := call(t, http.MethodPatch, path, medicalToken, model.ReviewMedicineRequest{Status: "approved"})
		require.Equal(t, http.StatusOK, status)

		status, body := call(t, http.MethodPatch, path, medicalToken, model.ReviewMedicineRequest{Status: "rejected"})
		require.Equal(t, http.StatusConflict, status)
		require.NotNil(t, body.Error)
		assert.Equal(t, "CONFLICT", body.Error.Code)
	})

	t.Run("Logout", func(t *testing.T) {
		status, _ := call(t, http.MethodPost, "/api/v1/auth/logout", parentToken, nil)
		require.Equal(t, http.StatusOK, status)

		status, body := call(t, http.MethodGet, "/api/v1/auth/me", parentToken, nil)
		require.Equal(t, http.StatusUnauthorized, status)
		require.NotNil(t, body.Error)
		assert.Equal(t, "SESSION_EXPIRED", body.Error.Code)
	})
}

// Helpers

func login(t *testing.T, email, password string) string {
	t.Helper()
	status, body := call(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)

	var out model.LoginResponse
	require.NoError(t, json.Unmarshal(body.Data, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func call(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func get(path, token string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}
