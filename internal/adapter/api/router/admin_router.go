package router

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/adapter/api/handler"
	"moverconnect/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	// Mover verification
	admin.GET("/movers", adminHandler.ListMovers)
	admin.PATCH("/movers/:id/verification", adminHandler.SetVerification)
	admin.PUT("/movers/:id/notes", adminHandler.SaveNotes)
	admin.DELETE("/movers/:id", adminHandler.DeleteMover)
	admin.POST("/movers/backfill", adminHandler.BackfillMovers)

	admin.GET("/clients", adminHandler.ListClients)
	admin.DELETE("/clients/:id", adminHandler.DeleteClient)
}
