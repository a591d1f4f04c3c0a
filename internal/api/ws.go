package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/hosteldesk/backend/internal/auth"
	"github.com/hosteldesk/backend/internal/events"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the dashboard frontend has a fixed host.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades dashboard connections onto the event hub.
type WSHandler struct {
	hub       *events.Hub
	jwtSecret string
	logger    *zap.Logger
}

func NewWSHandler(hub *events.Hub, jwtSecret string, logger *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, jwtSecret: jwtSecret, logger: logger}
}

// Serve handles GET /v1/ws. Browsers cannot set headers on a websocket
// handshake, so the token rides in a query parameter instead of the
// usual Authorization header.
func (h *WSHandler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	claims, err := auth.ParseToken(token, h.jwtSecret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	client := events.NewClient(h.hub, conn, claims.UserID, h.logger)
	client.Run()
}
