package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hosteldesk/backend/internal/complaints"
	"github.com/hosteldesk/backend/internal/events"
	"github.com/hosteldesk/backend/internal/middleware"
	"github.com/hosteldesk/backend/internal/models"
	"github.com/hosteldesk/backend/internal/store"
)

// ComplaintsHandler serves the complaint collection. Every mutation
// publishes a lifecycle event so connected dashboards refresh live.
type ComplaintsHandler struct {
	svc    *complaints.Service
	store  *store.Store
	hub    *events.Hub
	logger *zap.Logger
}

func NewComplaintsHandler(svc *complaints.Service, s *store.Store, hub *events.Hub, logger *zap.Logger) *ComplaintsHandler {
	return &ComplaintsHandler{svc: svc, store: s, hub: hub, logger: logger}
}

// actor resolves the acting user from the request claims. The user
// collection is authoritative for room/department; the token only
// carries identity.
func (h *ComplaintsHandler) actor(c *gin.Context) (models.User, bool) {
	u, found := h.store.UserByID(middleware.GetUserID(c))
	return u, found
}

type createComplaintRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
}

// Create handles POST /v1/complaints (students only, enforced by the
// route group; the service re-checks the role and no-ops otherwise).
func (h *ComplaintsHandler) Create(c *gin.Context) {
	var req createComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}
	if !models.ValidPriority(req.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown priority"})
		return
	}

	actor, found := h.actor(c)
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	created, ok := h.svc.Add(c.Request.Context(), actor, complaints.Input{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "only students can file complaints"})
		return
	}

	h.hub.Publish(events.TypeComplaintCreated, &created)
	c.JSON(http.StatusCreated, created)
}

// List handles GET /v1/complaints, scoped by role the same way the
// dashboards are: students see their own, staff their assignments,
// admins everything.
func (h *ComplaintsHandler) List(c *gin.Context) {
	all := h.store.Complaints()

	switch middleware.GetRole(c) {
	case models.RoleStudent:
		c.JSON(http.StatusOK, complaints.ByStudent(all, middleware.GetUserID(c)))
	case models.RoleStaff:
		active, completed := complaints.ByStaff(all, middleware.GetUserID(c))
		c.JSON(http.StatusOK, gin.H{"active": active, "completed": completed})
	default:
		c.JSON(http.StatusOK, all)
	}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /v1/complaints/:id/status (staff, admin).
func (h *ComplaintsHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	actor, found := h.actor(c)
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	id := c.Param("id")
	found, err := h.svc.UpdateStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		if errors.Is(err, complaints.ErrIllegalTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("update status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
		return
	}

	updated, _ := h.store.ComplaintByID(id)
	h.hub.Publish(events.TypeComplaintUpdated, &updated)
	c.JSON(http.StatusOK, updated)
}

type assignRequest struct {
	StaffID   string `json:"staffId" binding:"required"`
	StaffName string `json:"staffName" binding:"required"`
}

// Assign handles POST /v1/complaints/:id/assign (admin only).
func (h *ComplaintsHandler) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if !h.svc.Assign(c.Request.Context(), id, req.StaffID, req.StaffName) {
		c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
		return
	}

	updated, _ := h.store.ComplaintByID(id)
	h.hub.Publish(events.TypeComplaintAssigned, &updated)
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/complaints/:id. A missing id still answers
// 200: deleting what is already gone is success-shaped, matching the
// original UI which never surfaced a delete failure.
func (h *ComplaintsHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	id := c.Param("id")
	found, err := h.svc.Delete(c.Request.Context(), actor, id)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	if found {
		h.hub.Publish(events.TypeComplaintDeleted, &models.Complaint{ID: id})
	}
	c.JSON(http.StatusOK, gin.H{"deleted": found})
}

// Staff handles GET /v1/staff (admin): the staff directory, optionally
// narrowed to suggested assignees for a category.
func (h *ComplaintsHandler) Staff(c *gin.Context) {
	staff := h.store.Staff()
	if category := c.Query("category"); category != "" {
		staff = complaints.SuggestStaff(category, staff)
	}
	c.JSON(http.StatusOK, staff)
}
