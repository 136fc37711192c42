package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nehueninos/nhnproparts/pkg/logger"
	"github.com/nehueninos/nhnproparts/pkg/metrics"
	"github.com/nehueninos/nhnproparts/pkg/tracing"
	"github.com/nehueninos/nhnproparts/product-service/internal/config"
	producthttp "github.com/nehueninos/nhnproparts/product-service/internal/http"
	"github.com/nehueninos/nhnproparts/product-service/internal/repository"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Options{Service: "product-service"})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Options{
		Service: "product-service",
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
	})
	shutdownTracing := tracing.Setup("product-service")
	reg := metrics.NewRegistry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	repo, err := repository.Connect(connectCtx, repository.Credentials{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDatabase,
	})
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
		defer cancel()
		_ = repo.Close(closeCtx)
	}()
	log.Info().Str("database", cfg.MongoDatabase).Msg("mongodb ready")

	handler := producthttp.NewHandler(repo, cfg.DBTimeout)
	router := producthttp.NewRouter(handler, log, metrics.NewHTTPMetrics(reg, "product-service"), cfg.RequestTimeout)
	router.Handle("/metrics", metrics.Handler(reg))

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "products"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.HTTPPort).Msg("product service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down product service...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return shutdownTracing(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("product service stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("product service stopped")
}
