package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hosteldesk/backend/internal/complaints"
	"github.com/hosteldesk/backend/internal/middleware"
	"github.com/hosteldesk/backend/internal/models"
	"github.com/hosteldesk/backend/internal/store"
)

// DashboardHandler renders the role dashboards. The bare /dashboard
// route is the director: it reads the caller's role and redirects to the
// matching screen, the same transition the original router performed.
type DashboardHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewDashboardHandler(s *store.Store, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{store: s, logger: logger}
}

// Redirect handles GET /v1/dashboard
func (h *DashboardHandler) Redirect(c *gin.Context) {
	switch middleware.GetRole(c) {
	case models.RoleStudent:
		c.Redirect(http.StatusTemporaryRedirect, "/v1/dashboard/student")
	case models.RoleStaff:
		c.Redirect(http.StatusTemporaryRedirect, "/v1/dashboard/staff")
	case models.RoleAdmin:
		c.Redirect(http.StatusTemporaryRedirect, "/v1/dashboard/admin")
	default:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown role"})
	}
}

// Student handles GET /v1/dashboard/student: the caller's own
// complaints, newest first.
func (h *DashboardHandler) Student(c *gin.Context) {
	user, found := h.store.UserByID(middleware.GetUserID(c))
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"complaints": complaints.ByStudent(h.store.Complaints(), user.ID),
	})
}

// Staff handles GET /v1/dashboard/staff: assigned work split into the
// active queue and the finished pile.
func (h *DashboardHandler) Staff(c *gin.Context) {
	user, found := h.store.UserByID(middleware.GetUserID(c))
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	active, completed := complaints.ByStaff(h.store.Complaints(), user.ID)
	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"active":    active,
		"completed": completed,
	})
}

// Admin handles GET /v1/dashboard/admin: aggregate stats, the category
// breakdown, and the pending queue with suggested assignees per
// complaint. All of it recomputed from the canonical collections on
// every request.
func (h *DashboardHandler) Admin(c *gin.Context) {
	all := h.store.Complaints()
	staff := h.store.Staff()

	pending := complaints.Pending(all)
	suggestions := make(map[string][]models.User, len(pending))
	for _, p := range pending {
		suggestions[p.ID] = complaints.SuggestStaff(p.Category, staff)
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":       complaints.ComputeStats(all),
		"categories":  complaints.CategoryBreakdown(all),
		"pending":     pending,
		"suggestions": suggestions,
		"complaints":  all,
		"staff":       staff,
	})
}
