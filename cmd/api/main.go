package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/Shefwef/ghuroo-api/internal/config"
	"github.com/Shefwef/ghuroo-api/internal/email"
	"github.com/Shefwef/ghuroo-api/internal/handler"
	authHandler "github.com/Shefwef/ghuroo-api/internal/handler/auth"
	blogHandler "github.com/Shefwef/ghuroo-api/internal/handler/blog"
	bookingHandler "github.com/Shefwef/ghuroo-api/internal/handler/booking"
	notificationHandler "github.com/Shefwef/ghuroo-api/internal/handler/notification"
	reviewHandler "github.com/Shefwef/ghuroo-api/internal/handler/review"
	tourHandler "github.com/Shefwef/ghuroo-api/internal/handler/tour"
	userHandler "github.com/Shefwef/ghuroo-api/internal/handler/user"
	"github.com/Shefwef/ghuroo-api/internal/middleware"
	"github.com/Shefwef/ghuroo-api/internal/repository/postgres"
	"github.com/Shefwef/ghuroo-api/internal/router"
	authService "github.com/Shefwef/ghuroo-api/internal/service/auth"
	blogService "github.com/Shefwef/ghuroo-api/internal/service/blog"
	bookingService "github.com/Shefwef/ghuroo-api/internal/service/booking"
	notificationService "github.com/Shefwef/ghuroo-api/internal/service/notification"
	reviewService "github.com/Shefwef/ghuroo-api/internal/service/review"
	tourService "github.com/Shefwef/ghuroo-api/internal/service/tour"
	userService "github.com/Shefwef/ghuroo-api/internal/service/user"
	"github.com/Shefwef/ghuroo-api/pkg/auth"
	"github.com/Shefwef/ghuroo-api/pkg/logger"
	redisBroker "github.com/Shefwef/ghuroo-api/pkg/messaging/redis"
	"github.com/Shefwef/ghuroo-api/pkg/metrics"
)

const tourCacheTTL = 5 * time.Minute

func main() {
	// .env is optional; real deployments use the environment directly.
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

	appMetrics := metrics.NewMetrics("ghuroo", "api")

	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, appLogger.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	// Repositories
	base := postgres.NewBaseRepository(db, appMetrics)
	notificationRepo := postgres.NewNotificationRepository(base)
	userRepo := postgres.NewUserRepository(base)
	tourRepo := postgres.NewTourRepository(base)
	bookingRepo := postgres.NewBookingRepository(base)
	reviewRepo := postgres.NewReviewRepository(base)
	blogRepo := postgres.NewBlogRepository(base)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	notificationSvc := notificationService.NewService(notificationRepo, broker, appMetrics, appLogger.Zerolog(), cfg.Notification.ListLimit)
	fanout := notificationService.NewOrchestrator(notificationSvc, userRepo, appMetrics, appLogger.Zerolog())

	var emailSvc email.Service
	if cfg.SMTP.Enabled {
		emailSvc = email.NewService(cfg.SMTP)
	}

	authSvc := authService.NewService(userRepo, jwtSvc, appLogger.Zerolog())
	bookingSvc := bookingService.NewService(bookingRepo, tourRepo, userRepo, fanout, emailSvc, appLogger.Zerolog())
	reviewSvc := reviewService.NewService(reviewRepo, tourRepo, userRepo, fanout, appLogger.Zerolog())
	blogSvc := blogService.NewService(blogRepo, userRepo, fanout, appLogger.Zerolog())
	tourSvc := tourService.NewService(tourRepo, userRepo, fanout, appLogger.Zerolog())
	userSvc := userService.NewService(userRepo, fanout, appLogger.Zerolog())

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	tourCache := middleware.NewCacheMiddleware(tourCacheTTL, 10*time.Minute)

	// Handlers
	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		notificationHandler.NewHandler(notificationSvc),
		tourHandler.NewHandler(tourSvc, tourCache),
		bookingHandler.NewHandler(bookingSvc),
		reviewHandler.NewHandler(reviewSvc),
		blogHandler.NewHandler(blogSvc),
		userHandler.NewHandler(userSvc),
		handler.NewHealthHandler(db),
		router.Config{
			RateLimitEnabled:  cfg.RateLimit.Enabled,
			RateLimit:         rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:         cfg.RateLimit.Burst,
			PrometheusEnabled: cfg.Monitoring.PrometheusEnabled,
			MetricsPath:       cfg.Monitoring.MetricsPath,
			MetricsPrefix:     "ghuroo",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
