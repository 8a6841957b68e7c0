package notification

import (
	"log/slog"
	"net/http"

	"talently/internal/modules/session"
	"talently/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler accepts sockets from allowedOrigins; with none configured only
// same-host origins are accepted.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	h := &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if len(allowedOrigins) > 0 {
		allowed := make(map[string]bool, len(allowedOrigins))
		for _, o := range allowedOrigins {
			allowed[o] = true
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin]
		}
	}
	return h
}

// RegisterRoutes mounts the socket on a session-protected group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/notifications/ws", h.Connect)
}

func (h *Handler) Connect(c *gin.Context) {
	businessID := session.BusinessID(c)
	if businessID == "" {
		response.Fail(c, session.ErrUnauthenticated)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "business_id", businessID, "error", err)
		return
	}

	h.hub.Serve(conn, businessID)
}
