package router

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/adapter/api/handler"
	"moverconnect/internal/adapter/api/middleware"
	"moverconnect/internal/domain/entity"
)

func SetupBookingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	bookingHandler := handler.GetBookingHandler()
	messageHandler := handler.GetMessageHandler()
	reviewHandler := handler.GetReviewHandler()

	bookings := e.Group("/v1/bookings")
	bookings.Use(authMiddleware.Authenticate)

	participant := authMiddleware.RequireRole(entity.RoleClient, entity.RoleMover)
	clientOnly := authMiddleware.RequireRole(entity.RoleClient)

	bookings.POST("", bookingHandler.CreateBooking, clientOnly)
	bookings.GET("", bookingHandler.ListBookings, participant)
	bookings.PATCH("/:id/status", bookingHandler.UpdateStatus, authMiddleware.RequireRole(entity.RoleMover))

	// Messages
	bookings.GET("/:id/messages", messageHandler.ListMessages, participant)
	bookings.POST("/:id/messages", messageHandler.SendMessage, participant)

	// Reviews
	bookings.POST("/:id/review", reviewHandler.CreateReview, clientOnly)
	bookings.GET("/:id/reviewable", reviewHandler.CheckReviewable, clientOnly)
}
