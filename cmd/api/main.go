package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"moverconnect/internal/adapter/api"
	"moverconnect/internal/adapter/api/handler"
	apimiddleware "moverconnect/internal/adapter/api/middleware"
	"moverconnect/internal/adapter/api/router"
	"moverconnect/internal/app"
	"moverconnect/internal/infrastructure/ratelimit"
	"moverconnect/internal/infrastructure/websocket"
	"moverconnect/pkg/config"
	"moverconnect/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := app.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open backend: %v", err)
		return
	}
	defer backend.Close()

	limiter := ratelimit.NewRateLimiter(map[string]ratelimit.Limit{
		router.ActionAuth:        ratelimit.PerMinute(cfg.RateLimit.AuthPerMinute),
		router.ActionSendMessage: ratelimit.PerMinute(cfg.RateLimit.MessagesPerMinute),
	})
	limiter.StartCleanupRoutine(5*time.Minute, ctx.Done())

	useCases := backend.UseCases(limiter)
	handler.Setup(useCases)
	handler.SetupHealthHandler(backend.Identity)

	wsManager := websocket.NewManager(handler.NewLiveViews(useCases))
	wsManager.Start(ctx)

	authMiddleware := apimiddleware.NewAuthMiddleware(backend.Identity, useCases.Identity)
	adminMiddleware := apimiddleware.NewAdminMiddleware(backend.Policy)
	handler.SetupWebSocketHandler(ctx, wsManager, authMiddleware, useCases.Identity)

	e := api.NewEcho()
	router.Setup(e, authMiddleware, adminMiddleware, limiter)
	router.SetupWebSocketRouter(e, handler.GetWebSocketHandler())

	go func() {
		logger.Info("Starting server on port %s...", cfg.Server.Port)
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
