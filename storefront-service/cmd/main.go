package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nehueninos/nhnproparts/pkg/circuitbreaker"
	"github.com/nehueninos/nhnproparts/pkg/logger"
	"github.com/nehueninos/nhnproparts/pkg/metrics"
	"github.com/nehueninos/nhnproparts/pkg/tracing"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/catalog"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/checkout"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/config"
	h "github.com/nehueninos/nhnproparts/storefront-service/internal/http"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/notify"
	s "github.com/nehueninos/nhnproparts/storefront-service/internal/service"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/session"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/shipping"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		bootLog := logger.New(logger.Options{Service: "storefront-service"})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Options{
		Service: "storefront-service",
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
	})
	shutdownTracing := tracing.Setup("storefront-service")
	reg := metrics.NewRegistry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var quoter checkout.Quoter
	var tableWatcher *shipping.Reloader
	if cfg.ShippingTablePath != "" {
		tableWatcher, err = shipping.NewReloader(cfg.ShippingTablePath, log)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.ShippingTablePath).Msg("failed to load shipping table")
		}
		log.Info().Str("path", cfg.ShippingTablePath).Msg("shipping table loaded")
		quoter = tableWatcher
	} else {
		quoter, err = shipping.NewQuoter(shipping.DefaultTable())
		if err != nil {
			log.Fatal().Err(err).Msg("invalid shipping table")
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis connection failed")
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("redis ping succeeded")

	whatsapp, err := notify.NewWhatsApp(cfg.ShopWhatsApp)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid SHOP_WHATSAPP")
	}

	catalogService := catalog.NewService(
		catalog.NewClient(cfg.CatalogAPIURL, cfg.UpstreamTimeout).
			WithBreaker(circuitbreaker.Defaults("catalog-api"), log),
		catalog.NewRedisCache(redisClient, cfg.CatalogCacheTTL),
	)
	orderSink := notify.NewOrderSink(cfg.OrdersAPIURL, cfg.UpstreamTimeout).
		WithBreaker(circuitbreaker.Defaults("orders-api"), log)
	dispatcher := notify.NewDispatcher(orderSink).WithMetrics(reg)
	storefront := s.NewStorefront(
		session.NewRedisStore(redisClient, cfg.SessionTTL),
		catalogService,
		quoter,
		dispatcher,
		whatsapp,
	)

	handler := h.NewHandler(storefront, cfg.UpstreamTimeout, cfg.MaxRequestBodySize)
	router := h.NewRouter(handler, log, h.RouterConfig{
		RequestTimeout: cfg.RequestTimeout,
		SessionTTL:     cfg.SessionTTL,
		SecureCookies:  cfg.SecureCookies,
		Metrics:        metrics.NewHTTPMetrics(reg, "storefront-service"),
	})
	router.Handle("/metrics", metrics.Handler(reg))

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.HTTPPort).Msg("storefront service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if tableWatcher != nil {
		g.Go(func() error {
			// losing hot reload is not worth taking the server down
			if err := tableWatcher.Watch(gctx); err != nil {
				log.Error().Err(err).Msg("shipping table watcher stopped")
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return shutdownTracing(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("storefront service stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("server exited")
}
