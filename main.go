package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"schedly/config"
	"schedly/handlers"
	"schedly/middleware"
	"schedly/routes"
	"schedly/services/gateway"
	"schedly/services/scheduling"
	"schedly/utils"
	"schedly/worker"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	bookingGateway := gateway.NewHTTPGateway(
		config.AppConfig.BackendAPIURL,
		config.AppConfig.BackendCalendarID,
		time.Duration(config.AppConfig.BackendTimeoutSeconds)*time.Second,
		logger,
	)

	sessionStore := scheduling.NewRedisSessionStore(
		utils.GetSessionCacheClient(),
		time.Duration(config.AppConfig.SessionTTLMinutes)*time.Minute,
	)

	sessionService := &scheduling.DefaultSessionService{
		Gateway:  bookingGateway,
		Sessions: sessionStore,
		Refresh:  worker.NewEnqueuer(),
		Logger:   logger,
	}

	worker.InitConflictWorker(sessionService)

	schedulingHandler := handlers.NewSchedulingHandler(sessionService, logger)
	resourceHandler := handlers.NewResourceHandler(bookingGateway)

	routes.RegisterRoutes(router, schedulingHandler, resourceHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
