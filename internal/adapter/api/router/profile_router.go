package router

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/adapter/api/handler"
	"moverconnect/internal/adapter/api/middleware"
	"moverconnect/internal/domain/entity"
)

func SetupProfileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	profileHandler := handler.GetProfileHandler()

	profile := e.Group("/v1/profile")
	profile.Use(authMiddleware.Authenticate)
	profile.Use(authMiddleware.RequireRole(entity.RoleClient, entity.RoleMover))

	profile.GET("/:role", profileHandler.GetProfile)
	profile.PUT("/:role", profileHandler.UpdateProfile)
	profile.POST("/:role/photo", profileHandler.UploadPhoto)
}
