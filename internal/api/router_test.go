package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hosteldesk/backend/internal/advisor"
	"github.com/hosteldesk/backend/internal/api"
	"github.com/hosteldesk/backend/internal/auth"
	"github.com/hosteldesk/backend/internal/complaints"
	"github.com/hosteldesk/backend/internal/events"
	"github.com/hosteldesk/backend/internal/snapshot"
	"github.com/hosteldesk/backend/internal/store"
)

const testJWTSecret = "test-secret"

// newTestRouter wires a full router over a seeded store with a disabled
// advisor (fallbacks only, no network).
func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	snaps, err := snapshot.NewFileStore(t.TempDir())
	require.NoError(t, err)
	s := store.New(context.Background(), snaps, logger)

	gate := auth.NewGate(s, logger)
	svc := complaints.NewService(s, complaints.NewGuard(false), logger)
	hub := events.NewHub(logger)
	go hub.Run()

	router := api.NewRouter(api.Handlers{
		Auth:       api.NewAuthHandler(gate, testJWTSecret, logger),
		Complaints: api.NewComplaintsHandler(svc, s, hub, logger),
		Dashboard:  api.NewDashboardHandler(s, logger),
		Advisor:    api.NewAdvisorHandler(advisor.NewClient("http://example.invalid", "", "m", logger), s),
		WS:         api.NewWSHandler(hub, testJWTSecret, logger),
		JWTSecret:  testJWTSecret,
	})
	return router, s
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// loginAs returns a valid token for a seeded account.
func loginAs(t *testing.T, router *gin.Engine, id string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/v1/auth/login", "", gin.H{
		"id":       id,
		"password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}
