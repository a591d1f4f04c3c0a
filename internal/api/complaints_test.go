package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hosteldesk/backend/internal/models"
)

func TestCreateComplaint_StampsStudent(t *testing.T) {
	router, s := newTestRouter(t)
	token := loginAs(t, router, "STU005")

	w := doJSON(t, router, http.MethodPost, "/v1/complaints", token, gin.H{
		"title":       "T",
		"description": "D",
		"category":    "Plumbing",
		"priority":    "Low",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Complaint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "STU005", created.StudentID)
	assert.Equal(t, "105", created.StudentRoom)
	assert.Equal(t, models.StatusPending, created.Status)

	cs := s.Complaints()
	require.NotEmpty(t, cs)
	assert.Equal(t, created.ID, cs[0].ID)
}

func TestCreateComplaint_UnknownCategoryRejected(t *testing.T) {
	router, _ := newTestRouter(t)
	token := loginAs(t, router, "STU005")

	w := doJSON(t, router, http.MethodPost, "/v1/complaints", token, gin.H{
		"title": "T", "description": "D", "category": "Roofing", "priority": "Low",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateComplaint_StaffRedirectedByRoleGate(t *testing.T) {
	router, _ := newTestRouter(t)
	token := loginAs(t, router, "STAFF001")

	w := doJSON(t, router, http.MethodPost, "/v1/complaints", token, gin.H{
		"title": "T", "description": "D", "category": "Other", "priority": "Low",
	})
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/v1/dashboard", w.Header().Get("Location"))
}

func TestListComplaints_ScopedByRole(t *testing.T) {
	router, _ := newTestRouter(t)

	// Student sees only their own (seeded c1 belongs to STU001).
	w := doJSON(t, router, http.MethodGet, "/v1/complaints", loginAs(t, router, "STU001"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []models.Complaint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "c1", mine[0].ID)

	// Staff sees the active/completed split (c2 is assigned to STAFF002).
	w = doJSON(t, router, http.MethodGet, "/v1/complaints", loginAs(t, router, "STAFF002"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["active"], 1)
	assert.Len(t, body["completed"], 0)

	// Admin sees everything.
	w = doJSON(t, router, http.MethodGet, "/v1/complaints", loginAs(t, router, "ADMIN001"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Complaint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}

func TestUpdateStatus_StaffResolves(t *testing.T) {
	router, s := newTestRouter(t)
	token := loginAs(t, router, "STAFF002")

	w := doJSON(t, router, http.MethodPatch, "/v1/complaints/c2/status", token, gin.H{
		"status": "Resolved",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	c, found := s.ComplaintByID("c2")
	require.True(t, found)
	assert.Equal(t, models.StatusResolved, c.Status)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	token := loginAs(t, router, "ADMIN001")

	w := doJSON(t, router, http.MethodPatch, "/v1/complaints/missing/status", token, gin.H{
		"status": "Resolved",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssign_AdminOnly(t *testing.T) {
	router, s := newTestRouter(t)

	// Staff cannot assign; they bounce to the dashboard director.
	w := doJSON(t, router, http.MethodPost, "/v1/complaints/c1/assign", loginAs(t, router, "STAFF001"), gin.H{
		"staffId": "STAFF001", "staffName": "Staff Member 1",
	})
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)

	w = doJSON(t, router, http.MethodPost, "/v1/complaints/c1/assign", loginAs(t, router, "ADMIN001"), gin.H{
		"staffId": "STAFF001", "staffName": "Staff Member 1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	c, found := s.ComplaintByID("c1")
	require.True(t, found)
	assert.Equal(t, models.StatusInProgress, c.Status)
	assert.Equal(t, "STAFF001", c.AssignedTo)
}

func TestDeleteComplaint_SuccessShapedEvenWhenAbsent(t *testing.T) {
	router, _ := newTestRouter(t)
	token := loginAs(t, router, "STU001")

	w := doJSON(t, router, http.MethodDelete, "/v1/complaints/c1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["deleted"])

	w = doJSON(t, router, http.MethodDelete, "/v1/complaints/c1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["deleted"])
}

func TestDashboard_RedirectsByRole(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := map[string]string{
		"STU001":   "/v1/dashboard/student",
		"STAFF001": "/v1/dashboard/staff",
		"ADMIN001": "/v1/dashboard/admin",
	}
	for id, want := range cases {
		w := doJSON(t, router, http.MethodGet, "/v1/dashboard", loginAs(t, router, id), nil)
		assert.Equal(t, http.StatusTemporaryRedirect, w.Code, id)
		assert.Equal(t, want, w.Header().Get("Location"), id)
	}
}

func TestAdminDashboard_Payload(t *testing.T) {
	router, _ := newTestRouter(t)
	token := loginAs(t, router, "ADMIN001")

	w := doJSON(t, router, http.MethodGet, "/v1/dashboard/admin", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	stats, ok := body["stats"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 2, stats["total"])
	assert.EqualValues(t, 1, stats["pending"])

	categories, ok := body["categories"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, categories, len(models.Categories))

	// Seeded pending complaint c1 is Electrical; the seed has two
	// Electrical staff plus none in "Other".
	suggestions, ok := body["suggestions"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, suggestions, "c1")
}

func TestStaffDirectory_CategoryFilter(t *testing.T) {
	router, _ := newTestRouter(t)
	token := loginAs(t, router, "ADMIN001")

	w := doJSON(t, router, http.MethodGet, "/v1/staff?category=Plumbing", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var staff []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &staff))
	require.NotEmpty(t, staff)
	for _, s := range staff {
		assert.Equal(t, "Plumbing", s.Department)
	}
}

func TestAdvisorEndpoints_FallbacksWithoutKey(t *testing.T) {
	router, _ := newTestRouter(t)
	token := loginAs(t, router, "STU001")

	w := doJSON(t, router, http.MethodPost, "/v1/advisor/enhance", token, gin.H{"text": "fan is noisy"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fan is noisy", decodeBody(t, w)["text"])

	w = doJSON(t, router, http.MethodPost, "/v1/advisor/categorize", token, gin.H{
		"title": "tap leaks", "description": "water everywhere",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Other", decodeBody(t, w)["category"])

	adminToken := loginAs(t, router, "ADMIN001")
	w = doJSON(t, router, http.MethodPost, "/v1/advisor/insights", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Unable to generate insights due to an error.", decodeBody(t, w)["summary"])
}
