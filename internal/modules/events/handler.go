package events

import (
	"log/slog"
	"net/http"

	"taskboard/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the frontend domain is fixed.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type accessVerifier interface {
	VerifyAccess(tokenStr string) (*token.Claims, error)
}

type Handler struct {
	hub      *Hub
	verifier accessVerifier
}

func NewHandler(hub *Hub, verifier accessVerifier) *Handler {
	return &Handler{hub: hub, verifier: verifier}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/ws", h.Connect)
}

// Connect upgrades the request to a websocket. Browsers cannot set an
// Authorization header on the upgrade request, so the access token comes in
// the "token" query parameter.
func (h *Handler) Connect(c *gin.Context) {
	raw := c.Query("token")
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   gin.H{"code": "UNAUTHORIZED", "message": "Token query parameter is required"},
		})
		return
	}

	claims, err := h.verifier.VerifyAccess(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   gin.H{"code": "UNAUTHORIZED", "message": "Invalid or expired token"},
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	userID := claims.UserID
	slog.Info("websocket connected", "user_id", userID)

	h.hub.ServeWS(conn, userID)

	slog.Info("websocket disconnected", "user_id", userID)
}
