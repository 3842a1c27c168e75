package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"example.com/gatherly/services/planning/api"
	"example.com/gatherly/services/planning/config"
	"example.com/gatherly/services/planning/internal/cache"
	"example.com/gatherly/services/planning/internal/db"
	"example.com/gatherly/services/planning/internal/messaging"
	"example.com/gatherly/services/planning/internal/search"
	"example.com/gatherly/services/planning/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			logrus.Fatalf("Failed to load configuration: %v", err)
		}

		logger := newLogger(cfg.Environment)

		dbConn, err := db.Connect(cfg.Database)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}

		if err := db.Migrate(dbConn); err != nil {
			logger.Fatalf("Failed to run database migrations: %v", err)
		}

		cacheClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}

		busClient, err := messaging.NewClient(cfg.Azure)
		if err != nil {
			logger.Fatalf("Failed to initialize message bus: %v", err)
		}

		var searchClient search.Client
		if cfg.Elastic.Enabled {
			searchClient, err = search.NewClient(cfg.Elastic)
			if err != nil {
				logger.WithError(err).Warn("Failed to initialize Elasticsearch, continuing without indexing")
				searchClient = nil
			}
		}

		nrApp, err := telemetry.InitNewRelic(cfg.NewRelic)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize New Relic, continuing without tracing")
		}

		server := api.NewServer(&cfg, logger, nrApp, dbConn, cacheClient, busClient, searchClient)

		go func() {
			if err := server.Start(); err != nil && err != http.ErrServerClosed {
				logger.Fatalf("Failed to start server: %v", err)
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer cancel()

		logger.Info("Shutting down server...")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Fatalf("Server shutdown failed: %v", err)
		}

		if err := busClient.Close(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Message bus closure failed")
		}

		logger.Info("Server shutdown complete")
	},
}
