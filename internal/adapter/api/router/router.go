package router

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/adapter/api/middleware"
	"moverconnect/internal/infrastructure/ratelimit"
)

// Rate-limited actions.
const (
	ActionAuth        = "auth"
	ActionSendMessage = "send_message"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, limiter *ratelimit.RateLimiter) {
	SetupAuthRouter(e, authMiddleware, limiter)
	SetupProfileRouter(e, authMiddleware)
	SetupMoverRouter(e, authMiddleware)
	SetupRequestRouter(e, authMiddleware)
	SetupBookingRouter(e, authMiddleware)
	SetupReviewRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupHealthRouter(e)
}
