package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nehueninos/nhnproparts/orders-service/internal/config"
	ordershttp "github.com/nehueninos/nhnproparts/orders-service/internal/http"
	"github.com/nehueninos/nhnproparts/orders-service/internal/publisher"
	"github.com/nehueninos/nhnproparts/orders-service/internal/repository"
	"github.com/nehueninos/nhnproparts/pkg/logger"
	"github.com/nehueninos/nhnproparts/pkg/metrics"
	"github.com/nehueninos/nhnproparts/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Options{Service: "orders-service"})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Options{
		Service: "orders-service",
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
	})
	shutdownTracing := tracing.Setup("orders-service")
	reg := metrics.NewRegistry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	creds := cfg.Credentials()
	connectCtx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	repo, err := repository.NewRepository(connectCtx, creds)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("host", cfg.DBHost).Msg("failed to connect to database")
	}
	defer repo.Close()

	if err := repo.RunMigrations(creds); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("database migrations completed")

	poller := publisher.NewOutboxPoller(
		repo,
		publisher.NewKafkaWriter(cfg.KafkaTopic, cfg.KafkaBrokers...),
		cfg.OutboxTick,
		cfg.OutboxBatchSize,
		log,
	).WithMetrics(reg)

	handler := ordershttp.NewHandler(repo, cfg.DBTimeout, cfg.MaxRequestBodySize)
	router := ordershttp.NewRouter(handler, repo, log, metrics.NewHTTPMetrics(reg, "orders-service"), cfg.RequestTimeout)
	router.Handle("/metrics", metrics.Handler(reg))

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "orders"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.HTTPPort).Msg("orders service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("outbox poller starting")
		return poller.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down orders service...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := poller.Close(); err != nil {
			log.Error().Err(err).Msg("error closing kafka writer")
		}
		return shutdownTracing(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("orders service stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("orders service stopped")
}
