package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hosteldesk/backend/internal/auth"
	"github.com/hosteldesk/backend/internal/models"
)

// AuthHandler serves login and signup — the only public endpoints — plus
// logout. Gate failures surface as inline messages with a 401/409, never
// as a server error: a bad credential is an expected outcome.
type AuthHandler struct {
	gate      *auth.Gate
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthHandler(gate *auth.Gate, jwtSecret string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{gate: gate, jwtSecret: jwtSecret, logger: logger}
}

type loginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// signupRequest mirrors the signup form: the min-6 password rule lives
// here at the surface, the gate itself accepts any non-empty strings.
type signupRequest struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// authResponse carries the token plus the session user so clients can
// render the right dashboard without a second round trip.
type authResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := h.gate.Login(c.Request.Context(), req.ID, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Credentials. Please check your ID and Password."})
		return
	}

	h.respondWithUser(c, http.StatusOK, user)
}

// Signup handles POST /v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := h.gate.Signup(c.Request.Context(), req.ID, req.Name, req.Password)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "User ID already exists. Please login instead."})
		return
	}

	h.respondWithUser(c, http.StatusCreated, user)
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.gate.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// respondWithUser builds the token and body from the user the gate just
// admitted, never from the session slot: that slot is shared process
// state and a concurrent login can overwrite it between the gate call
// and this response.
func (h *AuthHandler) respondWithUser(c *gin.Context, status int, user models.User) {
	token, err := auth.GenerateToken(user, h.jwtSecret, 24*time.Hour)
	if err != nil {
		h.logger.Error("generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}

	c.JSON(status, authResponse{Token: token, User: user})
}
