package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"example.com/gatherly/services/planning/config"
	"example.com/gatherly/services/planning/internal/cache"
	"example.com/gatherly/services/planning/internal/db"
	"example.com/gatherly/services/planning/internal/messaging"
	"example.com/gatherly/services/planning/internal/repository"
	"example.com/gatherly/services/planning/internal/service"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the background worker",
	Long:  `Start the background worker that auto-cancels under-subscribed events past their RSVP deadline and confirms events whose voting window has closed`,
	RunE:  runWorker,
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	dbConn, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}

	cacheClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize Redis cache, continuing without caching")
		cacheClient = nil
	}

	busClient, err := messaging.NewClient(cfg.Azure)
	if err != nil {
		return err
	}
	defer busClient.Close(context.Background())

	eventRepo := repository.NewEventRepository(dbConn)
	recommendationRepo := repository.NewRecommendationRepository(dbConn)

	lifecycle := service.NewLifecycleService(
		eventRepo, recommendationRepo, cacheClient, busClient, cfg.Azure.QueueName, logger)
	sweeper := service.NewSweeper(eventRepo, lifecycle, logger)

	g.Go(func() error {
		logger.WithField("interval", cfg.Worker.SweepInterval).Info("Starting deadline sweep job")

		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return err
		}

		_, err = scheduler.NewJob(
			gocron.DurationJob(cfg.Worker.SweepInterval),
			gocron.NewTask(func() {
				if err := sweeper.Run(ctx); err != nil {
					logger.WithError(err).Error("Deadline sweep failed")
				}
			}),
		)
		if err != nil {
			return err
		}

		scheduler.Start()

		<-ctx.Done()

		return scheduler.Shutdown()
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("Worker error")
		return err
	}

	logger.Info("Worker shutting down gracefully")
	return nil
}
