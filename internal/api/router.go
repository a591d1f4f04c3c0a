// Package api wires the HTTP surface: handlers, route groups, and the
// role gates that replaced the original client-side router.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/hosteldesk/backend/internal/middleware"
	"github.com/hosteldesk/backend/internal/models"
)

// Handlers bundles everything NewRouter needs.
type Handlers struct {
	Auth       *AuthHandler
	Complaints *ComplaintsHandler
	Dashboard  *DashboardHandler
	Advisor    *AdvisorHandler
	WS         *WSHandler
	JWTSecret  string
}

// NewRouter builds the gin engine. Health and auth are public; every
// other route sits behind the token gate, and the role groups mirror the
// original route guards: a caller with the wrong role is redirected to
// the dashboard director, not rejected.
func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/v1/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/v1/auth/login", h.Auth.Login)
	r.POST("/v1/auth/signup", h.Auth.Signup)

	// Websocket authenticates via query token inside the handler.
	r.GET("/v1/ws", h.WS.Serve)

	v1 := r.Group("/v1")
	v1.Use(middleware.AuthMiddleware(h.JWTSecret))

	v1.POST("/auth/logout", h.Auth.Logout)

	v1.GET("/dashboard", h.Dashboard.Redirect)
	v1.GET("/complaints", h.Complaints.List)

	v1.POST("/advisor/enhance", h.Advisor.Enhance)
	v1.POST("/advisor/categorize", h.Advisor.Categorize)

	student := v1.Group("")
	student.Use(middleware.RequireRole(models.RoleStudent))
	student.GET("/dashboard/student", h.Dashboard.Student)
	student.POST("/complaints", h.Complaints.Create)
	student.DELETE("/complaints/:id", h.Complaints.Delete)

	staff := v1.Group("")
	staff.Use(middleware.RequireRole(models.RoleStaff, models.RoleAdmin))
	staff.PATCH("/complaints/:id/status", h.Complaints.UpdateStatus)

	staffOnly := v1.Group("")
	staffOnly.Use(middleware.RequireRole(models.RoleStaff))
	staffOnly.GET("/dashboard/staff", h.Dashboard.Staff)

	admin := v1.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.GET("/dashboard/admin", h.Dashboard.Admin)
	admin.POST("/complaints/:id/assign", h.Complaints.Assign)
	admin.GET("/staff", h.Complaints.Staff)
	admin.POST("/advisor/insights", h.Advisor.Insights)

	return r
}
