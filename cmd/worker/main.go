package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Shefwef/ghuroo-api/internal/config"
	"github.com/Shefwef/ghuroo-api/internal/repository/postgres"
	"github.com/Shefwef/ghuroo-api/pkg/logger"
	"github.com/Shefwef/ghuroo-api/pkg/metrics"
	"github.com/Shefwef/ghuroo-api/pkg/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	appMetrics := metrics.NewMetrics("ghuroo", "worker")

	base := postgres.NewBaseRepository(db, appMetrics)
	notificationRepo := postgres.NewNotificationRepository(base)

	retention := worker.NewRetentionWorker(notificationRepo, worker.RetentionConfig{
		RetentionDays: cfg.Notification.RetentionDays,
		SweepInterval: cfg.Notification.SweepInterval,
	}, appLogger, appMetrics)

	ctx, cancel := context.WithCancel(context.Background())
	go retention.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker...")
	cancel()
}
