package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/srgjo27/royale_boxoffice/internal/adapter/cache/redis"
	"github.com/srgjo27/royale_boxoffice/internal/adapter/handler"
	"github.com/srgjo27/royale_boxoffice/internal/adapter/payment"
	"github.com/srgjo27/royale_boxoffice/internal/adapter/repository/postgres"
	"github.com/srgjo27/royale_boxoffice/internal/adapter/session"
	"github.com/srgjo27/royale_boxoffice/internal/config"
	"github.com/srgjo27/royale_boxoffice/internal/core/ports"
	"github.com/srgjo27/royale_boxoffice/internal/core/services"
	"github.com/srgjo27/royale_boxoffice/internal/platform/database"
	"github.com/srgjo27/royale_boxoffice/internal/platform/logging"
	"github.com/srgjo27/royale_boxoffice/internal/platform/retry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := logging.Init(cfg.LogLevel, true); err != nil {
		logrus.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to connect to db after retries: %v", err)
	}
	defer db.Close()

	if err := postgres.InitializeDatabaseSchema(ctx, db); err != nil {
		logrus.Fatal(err)
	}

	var catalog ports.Catalog = postgres.NewPerformanceRepository(db)

	logrus.WithField("addr", cfg.Redis.Addr()).Info("Connecting to Redis")
	redisClient, err := redis.NewClient(ctx, cfg.Redis.Addr(), cfg.Redis.DB)
	if err != nil {
		logrus.WithError(err).Warn("Redis unavailable, performance searches are not cached")
	} else {
		defer redisClient.Close()
		catalog = redis.NewCachedCatalog(catalog, redisClient, cfg.Redis.CacheTTL)
		logrus.Info("Redis connected successfully!")
	}

	policy := retry.Policy{
		Attempts:        cfg.CallRetries,
		Timeout:         cfg.CallTimeout,
		InitialInterval: 100 * time.Millisecond,
	}

	reconciler := services.NewInventoryReconciler(
		catalog,
		postgres.NewCustomerRepository(db),
		payment.NewLimitAuthorizer(cfg.PaymentMaxAmount),
		postgres.NewBookingRepository(db),
		policy,
	)

	sessions := session.NewStore(func() *services.Session {
		return services.NewSession(catalog, reconciler, cfg.ConcessionRate, cfg.MaxInputAttempts)
	}, cfg.SessionIdleTTL)

	server := handler.NewServer(cfg.HTTPAddr, sessions)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sessions.RunBackgroundCleanup(ctx, time.Minute)
		return nil
	})

	g.Go(func() error {
		return server.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("Server stopped with error")
		os.Exit(1)
	}

	logrus.Info("Server exiting")
}
