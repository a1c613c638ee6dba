package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"moverconnect/internal/domain/service"
)

type HealthHandler struct {
	identity service.IdentityProvider
}

var healthHandler *HealthHandler

func NewHealthHandler(identity service.IdentityProvider) *HealthHandler {
	return &HealthHandler{
		identity: identity,
	}
}

func SetupHealthHandler(identity service.IdentityProvider) {
	healthHandler = NewHealthHandler(identity)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) CheckFirebaseHealth(c echo.Context) error {
	err := h.identity.TestConnection(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "Firebase Auth connection failed",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "Firebase Auth connected successfully",
	})
}
