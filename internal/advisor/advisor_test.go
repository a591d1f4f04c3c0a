package advisor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/hosteldesk/backend/internal/models"
)

// modelServer fakes the generateContent endpoint with a fixed reply.
func modelServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, text)
	}))
}

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, "test-key", "test-model", zap.NewNop())
}

func TestEnhanceDescription_Success(t *testing.T) {
	srv := modelServer(t, http.StatusOK, "The ceiling fan emits a loud clicking noise.")
	defer srv.Close()

	out := newTestClient(srv.URL).EnhanceDescription(context.Background(), "fan is noisy")
	assert.Equal(t, "The ceiling fan emits a loud clicking noise.", out)
}

func TestEnhanceDescription_FailureReturnsOriginal(t *testing.T) {
	srv := modelServer(t, http.StatusInternalServerError, "")
	defer srv.Close()

	out := newTestClient(srv.URL).EnhanceDescription(context.Background(), "fan is noisy")
	assert.Equal(t, "fan is noisy", out)
}

func TestEnhanceDescription_EmptyResponseReturnsOriginal(t *testing.T) {
	srv := modelServer(t, http.StatusOK, "   ")
	defer srv.Close()

	out := newTestClient(srv.URL).EnhanceDescription(context.Background(), "fan is noisy")
	assert.Equal(t, "fan is noisy", out)
}

func TestEnhanceDescription_UnreachableEndpoint(t *testing.T) {
	out := newTestClient("http://127.0.0.1:1").EnhanceDescription(context.Background(), "original")
	assert.Equal(t, "original", out)
}

func TestCategorize_MatchesBySubstring(t *testing.T) {
	srv := modelServer(t, http.StatusOK, "The category is: Plumbing.")
	defer srv.Close()

	got := newTestClient(srv.URL).Categorize(context.Background(), "tap leaks", "water everywhere")
	assert.Equal(t, "Plumbing", got)
}

func TestCategorize_UnknownLabelFallsBackToOther(t *testing.T) {
	srv := modelServer(t, http.StatusOK, "Structural")
	defer srv.Close()

	got := newTestClient(srv.URL).Categorize(context.Background(), "crack in wall", "the wall is cracked")
	assert.Equal(t, "Other", got)
}

func TestCategorize_FailureFallsBackToOther(t *testing.T) {
	srv := modelServer(t, http.StatusBadGateway, "")
	defer srv.Close()

	got := newTestClient(srv.URL).Categorize(context.Background(), "t", "d")
	assert.Equal(t, "Other", got)
}

func TestSummarizeForAdmin_Success(t *testing.T) {
	srv := modelServer(t, http.StatusOK, "Plumbing dominates this week; focus there.")
	defer srv.Close()

	got := newTestClient(srv.URL).SummarizeForAdmin(context.Background(), []models.Complaint{
		{Category: "Plumbing", Title: "Tap leaking", Status: models.StatusPending},
	})
	assert.Equal(t, "Plumbing dominates this week; focus there.", got)
}

func TestSummarizeForAdmin_FailureAndEmptyFallbacks(t *testing.T) {
	failing := modelServer(t, http.StatusInternalServerError, "")
	defer failing.Close()
	assert.Equal(t, FallbackInsightError,
		newTestClient(failing.URL).SummarizeForAdmin(context.Background(), nil))

	empty := modelServer(t, http.StatusOK, "")
	defer empty.Close()
	assert.Equal(t, FallbackNoInsights,
		newTestClient(empty.URL).SummarizeForAdmin(context.Background(), nil))
}

func TestDisabledClientNeverErrors(t *testing.T) {
	// No API key: every function degrades to its fallback without any
	// network traffic.
	c := NewClient("http://example.invalid", "", "test-model", zap.NewNop())
	ctx := context.Background()

	assert.Equal(t, "text", c.EnhanceDescription(ctx, "text"))
	assert.Equal(t, "Other", c.Categorize(ctx, "t", "d"))
	assert.Equal(t, FallbackInsightError, c.SummarizeForAdmin(ctx, nil))
}
