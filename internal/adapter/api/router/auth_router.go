package router

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/adapter/api/handler"
	"moverconnect/internal/adapter/api/middleware"
	"moverconnect/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	authHandler := handler.GetAuthHandler()
	throttled := middleware.RateLimit(limiter, ActionAuth)

	// Public routes
	e.GET("/v1/auth/roles", authHandler.Roles)
	e.POST("/v1/auth/login", authHandler.Login, throttled)
	e.POST("/v1/auth/admin/login", authHandler.AdminLogin, throttled)
	e.POST("/v1/auth/register/client", authHandler.RegisterClient, throttled)
	e.POST("/v1/auth/register/mover", authHandler.RegisterMover, throttled)

	protected := e.Group("/v1/auth")
	protected.Use(authMiddleware.Authenticate)

	protected.GET("/me", authHandler.Me)
}
