package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hosteldesk/backend/internal/advisor"
	"github.com/hosteldesk/backend/internal/store"
)

// AdvisorHandler exposes the three advisory functions. They never fail:
// the advisor degrades to fallbacks internally, so every response here
// is a 200 with a string.
type AdvisorHandler struct {
	advisor *advisor.Client
	store   *store.Store
}

func NewAdvisorHandler(a *advisor.Client, s *store.Store) *AdvisorHandler {
	return &AdvisorHandler{advisor: a, store: s}
}

type enhanceRequest struct {
	Text string `json:"text" binding:"required"`
}

// Enhance handles POST /v1/advisor/enhance
func (h *AdvisorHandler) Enhance(c *gin.Context) {
	var req enhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text": h.advisor.EnhanceDescription(c.Request.Context(), req.Text),
	})
}

type categorizeRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// Categorize handles POST /v1/advisor/categorize
func (h *AdvisorHandler) Categorize(c *gin.Context) {
	var req categorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": h.advisor.Categorize(c.Request.Context(), req.Title, req.Description),
	})
}

// Insights handles POST /v1/advisor/insights (admin): the trend summary
// over the whole complaint collection.
func (h *AdvisorHandler) Insights(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"summary": h.advisor.SummarizeForAdmin(c.Request.Context(), h.store.Complaints()),
	})
}
