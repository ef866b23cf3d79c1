// Package main provides the entry point for the goAccountFinder service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chybatronik/goAccountFinder/internal/config"
	"github.com/chybatronik/goAccountFinder/internal/database"
	"github.com/chybatronik/goAccountFinder/internal/handlers"
	"github.com/chybatronik/goAccountFinder/internal/logging"
)

const serviceName = "goAccountFinder"

var (
	// Build information (set during build)
	Version   = "dev"
	BuildTime = ""
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	logger, closeLogs, err := logging.New(appConfig.Logging, serviceName, Version)
	if err != nil {
		log.Fatalf("FATAL: Failed to set up logging: %v", err)
	}
	defer closeLogs()
	logger = logger.WithServiceContext()

	logStartupEvents(logger, appConfig)

	connector, err := database.NewPgConnector(appConfig.Database)
	if err != nil {
		logger.Error("Failed to parse database configuration", logging.FieldError, err)
		closeLogs()
		os.Exit(1)
	}

	// A failed check is logged, not fatal: lookups connect per call and
	// report an unavailable backend on their own.
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(appConfig.Database.ConnectTimeout+1)*time.Second)
	if err := database.ValidateConnection(ctx, connector); err != nil {
		logger.DatabaseError("initial connection check failed", err)
	} else {
		logger.Database("Database connection verified")
	}
	cancel()

	done := make(chan struct{})
	server := setupHTTPServer(appConfig, connector, logger, done)

	serverErr := make(chan error, 1)
	go func() {
		logger.Startup("HTTP server starting",
			"host", appConfig.Server.Host,
			"port", appConfig.Server.Port,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	logger.Startup("goAccountFinder service started successfully")

	gracefulShutdown(server, serverErr, done, appConfig.Application.ShutdownTimeout, logger)
}

// setupHTTPServer configures and returns an HTTP server with structured logging and middleware
func setupHTTPServer(appConfig *config.Config, connector database.Connector, logger *logging.Logger, done <-chan struct{}) *http.Server {
	healthHandler := handlers.NewHealthHandler(serviceName, Version, logger)
	if appConfig.HealthCheck.Enabled {
		healthHandler.AddChecker(database.NewHealthChecker(connector, logger))
	}

	finder := database.NewAccountFinder(connector, logger, appConfig.Database.QueryTimeoutDuration())

	handler := handlers.NewRouter(handlers.RouterOptions{
		Logger:            logger,
		Accounts:          finder,
		Health:            healthHandler,
		RequestsPerSecond: appConfig.Application.RequestsPerSecond(),
		Burst:             appConfig.Application.RateLimitBurst,
		Done:              done,
	})

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.Port),
		Handler:      handler,
		ReadTimeout:  time.Duration(appConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(appConfig.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(appConfig.Server.IdleTimeout) * time.Second,
	}
}

// gracefulShutdown waits for a signal or a server failure, then drains in-flight requests
func gracefulShutdown(server *http.Server, serverErr <-chan error, done chan<- struct{}, shutdownTimeout int, logger *logging.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		logger.Startup("Received signal, initiating graceful shutdown", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			logger.Error("HTTP server failed", logging.FieldError, err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
	defer cancel()

	logger.Startup("Shutting down HTTP server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", logging.FieldError, err)
	} else {
		logger.Startup("HTTP server shutdown completed")
	}
	close(done)

	logger.Startup("goAccountFinder service shutdown completed")
}

// logStartupEvents logs comprehensive startup information
func logStartupEvents(logger *logging.Logger, cfg *config.Config) {
	logger.Startup("goAccountFinder service starting up",
		"build_time", BuildTime,
	)

	logger.Startup("configuration loaded successfully",
		"environment", cfg.Application.Environment,
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
		"server_port", cfg.Server.Port,
		"server_host", cfg.Server.Host,
		"db_host", cfg.Database.Host,
		"db_port", cfg.Database.Port,
		"db_name", cfg.Database.Database,
		"health_check_enabled", cfg.HealthCheck.Enabled,
		"seq_enabled", cfg.Logging.SeqURL != "",
	)
}
