package router

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/adapter/api/handler"
	"moverconnect/internal/adapter/api/middleware"
	"moverconnect/internal/domain/entity"
)

func SetupRequestRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	requestHandler := handler.GetRequestHandler()
	quoteHandler := handler.GetQuoteHandler()

	requests := e.Group("/v1/requests")
	requests.Use(authMiddleware.Authenticate)

	clientOnly := authMiddleware.RequireRole(entity.RoleClient)
	moverOnly := authMiddleware.RequireRole(entity.RoleMover)

	requests.POST("", requestHandler.CreateRequest, clientOnly)
	requests.GET("/mine", requestHandler.ListMyRequests, clientOnly)
	requests.GET("", requestHandler.ListRequests, moverOnly)
	requests.POST("/:clientId/:requestId/quotes", quoteHandler.SubmitQuote, moverOnly)

	quotes := e.Group("/v1/quotes")
	quotes.Use(authMiddleware.Authenticate)
	quotes.GET("", quoteHandler.ListQuotes, authMiddleware.RequireRole(entity.RoleClient, entity.RoleMover))
}
