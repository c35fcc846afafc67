// internal/handlers/websocket/websocket.go
package websocket

import (
	"net/http"

	"parkreg-service/internal/pkg/response"
	authsvc "parkreg-service/internal/service/auth"
	ws "parkreg-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same-origin pages and the admin console both connect here; origin
		// checking is handled by the reverse proxy in deployment.
		return true
	},
}

type WebSocketHandler struct {
	hub         *ws.Hub
	authService *authsvc.Service
	logger      *zap.Logger
}

func NewWebSocketHandler(hub *ws.Hub, authService *authsvc.Service, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
		logger:      logger,
	}
}

// HandleConnection authenticates the caller (applicant session token or
// admin bearer token via the token query parameter) and upgrades to a
// websocket carrying lifecycle events.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Unauthorized(c, "missing authentication token")
		return
	}

	var (
		applicantID int64
		adminID     int64
		isAdmin     bool
	)
	if claims, err := h.authService.VerifyAdminToken(token); err == nil {
		isAdmin = true
		adminID = claims.AdminID
	} else if sess, err := h.authService.ResolveSession(c.Request.Context(), token); err == nil {
		applicantID = sess.ApplicantID
	} else {
		h.logger.Warn("websocket authentication failed", zap.String("ip", c.ClientIP()))
		response.Unauthorized(c, "authentication failed")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	var client *ws.Client
	if isAdmin {
		client = ws.NewAdminClient(h.hub, conn, adminID, h.logger)
	} else {
		client = ws.NewApplicantClient(h.hub, conn, applicantID, h.logger)
	}
	client.Start()
}
