package router

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/adapter/api/handler"
	"moverconnect/internal/adapter/api/middleware"
	"moverconnect/internal/domain/entity"
)

func SetupMoverRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	moverHandler := handler.GetMoverHandler()

	movers := e.Group("/v1/movers")
	movers.Use(authMiddleware.Authenticate)

	movers.GET("", moverHandler.ListMovers, authMiddleware.RequireRole(entity.RoleClient, entity.RoleMover, entity.RoleAdmin))
	movers.GET("/:id/rating", moverHandler.GetRating)

	self := movers.Group("/me")
	self.Use(authMiddleware.RequireRole(entity.RoleMover))
	self.PATCH("/availability", moverHandler.SetAvailability)
	self.POST("/credentials", moverHandler.UploadCredentials)
}
