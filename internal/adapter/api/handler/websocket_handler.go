package handler

import (
	"context"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"moverconnect/internal/adapter/api/middleware"
	ws "moverconnect/internal/infrastructure/websocket"
	"moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	roles          middleware.RoleResolver
	baseCtx        context.Context
}

var webSocketHandler *WebSocketHandler

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewWebSocketHandler builds the /ws endpoint. Subscriptions live until
// the connection drops or baseCtx ends.
func NewWebSocketHandler(baseCtx context.Context, wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware, roles middleware.RoleResolver) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		roles:          roles,
		baseCtx:        baseCtx,
	}
}

func SetupWebSocketHandler(baseCtx context.Context, wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware, roles middleware.RoleResolver) {
	webSocketHandler = NewWebSocketHandler(baseCtx, wsManager, authMiddleware, roles)
}

func GetWebSocketHandler() *WebSocketHandler {
	return webSocketHandler
}

// HandleWebSocket authenticates with ?token= (browsers cannot set headers
// on the upgrade request) or a bearer header, then hands the connection
// to the manager.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		var ok bool
		if token, ok = middleware.BearerToken(c); !ok {
			return errors.Unauthorized("Authentication required", nil)
		}
	}

	ctx := c.Request().Context()
	user, err := h.authMiddleware.VerifyToken(ctx, token)
	if err != nil {
		return err
	}
	role, err := h.roles.ResolveRole(ctx, user.UID, user.Email)
	if err != nil {
		return err
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("WebSocket: upgrade failed for %s: %v", user.UID, err)
		return nil
	}

	client := ws.NewClient(h.baseCtx, ws.Session{
		UserID: user.UID,
		Email:  user.Email,
		Role:   string(role),
	}, conn)
	if !h.wsManager.Add(client) {
		conn.Close()
		return nil
	}

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
