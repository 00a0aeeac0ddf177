package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kmonkmol38/DashNew1/internal/api"
	"github.com/kmonkmol38/DashNew1/internal/config"
	"github.com/kmonkmol38/DashNew1/internal/service"
	"github.com/kmonkmol38/DashNew1/internal/session"
	"github.com/kmonkmol38/DashNew1/internal/storage"
	"github.com/kmonkmol38/DashNew1/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize session store
	store, err := session.NewStore(cfg.Session)
	if err != nil {
		logger.Log.Warn().Err(err).
			Str("backend", cfg.Session.Backend).
			Msg("Session store unavailable, falling back to in-memory store")
		store = session.NewMemoryStore()
	}

	// Initialize workbook archive
	var archive storage.WorkbookArchive = storage.NewNoopArchive()
	if cfg.Storage.Enabled {
		minioArchive, err := storage.NewMinioArchive(cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Workbook archive unavailable, uploads will not be archived")
		} else {
			archive = minioArchive
		}
	}

	// Initialize services
	dashboard := service.NewDashboardService(store, archive)
	dashboard.Restore(context.Background())

	// Initialize HTTP server
	router := api.NewRouter(dashboard, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
