package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kore-landing-backend/internal/api/routes"
	"kore-landing-backend/internal/config"
	"kore-landing-backend/internal/database"
	"kore-landing-backend/internal/logger"
	"kore-landing-backend/internal/metrics"
	"kore-landing-backend/internal/repository"
	"kore-landing-backend/internal/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "kore-landing-backend/docs" // This is needed for swag
)

//	@title			Kore Landing Backend API
//	@version		1.0
//	@description	Lead capture API behind the Kore landing page.

//	@contact.name	Kore
//	@contact.email	hola@kore.app

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:5000
//	@BasePath	/

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Set up logging
	logger.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Warn("Tracing disabled")
	}

	// Pick the lead store once; an unreachable database does not stop startup
	selection := repository.SelectLeadStore(cfg, database.Initialize)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := routes.SetupRoutes(cfg, selection, metrics.NewRegistry())

	// Start server
	port := cfg.Port
	if port == "" {
		port = "5000"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithField("backend", selection.Backend).Infof("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("Tracing shutdown failed")
	}
	if err := database.Close(selection.DB); err != nil {
		logrus.WithError(err).Warn("Failed to close database")
	}
}
