package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/kafka"
	redisstore "github.com/GOKULKRISHNA7868/tas-insight/internal/redis"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/report"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/store"
	"github.com/GOKULKRISHNA7868/tas-insight/pkg/telemetry"
	"github.com/GOKULKRISHNA7868/tas-insight/services/insight/config"
	"github.com/GOKULKRISHNA7868/tas-insight/services/insight/handler"
	"github.com/GOKULKRISHNA7868/tas-insight/services/insight/invalidator"
	"github.com/GOKULKRISHNA7868/tas-insight/services/insight/middleware"
	"github.com/GOKULKRISHNA7868/tas-insight/services/insight/refresher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the insight HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("http-port", "8080", "HTTP server port")
	serveCmd.Flags().String("metrics-addr", ":9095", "Prometheus metrics server address")
	serveCmd.Flags().String("kafka-brokers", "localhost:9092", "comma-separated Kafka broker addresses")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "Redis address (host:port)")
	serveCmd.Flags().String("postgres-dsn", "", "PostgreSQL connection string")
	serveCmd.Flags().Duration("cache-ttl", 60*time.Second, "collection snapshot cache TTL")
	serveCmd.Flags().String("refresh-cron", "*/15 * * * *", "stats refresh cron schedule")
	serveCmd.Flags().Int("rate-limit", 100, "max requests per window per client IP (0 = disabled)")
	serveCmd.Flags().Duration("rate-limit-window", time.Second, "rate limit window")
	serveCmd.Flags().String("otel-endpoint", "", "OTLP HTTP endpoint for tracing (e.g. localhost:4318); empty disables tracing")

	bindFlag("http_port", serveCmd.Flags(), "http-port")
	bindFlag("metrics_addr", serveCmd.Flags(), "metrics-addr")
	bindFlag("kafka_brokers", serveCmd.Flags(), "kafka-brokers")
	bindFlag("redis_addr", serveCmd.Flags(), "redis-addr")
	bindFlag("postgres_dsn", serveCmd.Flags(), "postgres-dsn")
	bindFlag("cache_ttl", serveCmd.Flags(), "cache-ttl")
	bindFlag("refresh_cron", serveCmd.Flags(), "refresh-cron")
	bindFlag("rate_limit", serveCmd.Flags(), "rate-limit")
	bindFlag("rate_limit_window", serveCmd.Flags(), "rate-limit-window")
	bindFlag("otel_endpoint", serveCmd.Flags(), "otel-endpoint")
	_ = viper.BindEnv("otel_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Load(viper.GetViper())
	logger := buildLogger(cfg.LogLevel, "insight")

	shutdownTracer, err := telemetry.InitTracer(context.Background(), "insight", cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("tracer: %w", err)
	}
	defer shutdownTracer()

	// ── record store ──────────────────────────────────────────────────────────
	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := store.NewPool(initCtx, cfg.PostgresDSN)
	cancel()
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	pg := store.NewPostgres(pool)

	redisClient := redisstore.NewClient(cfg.RedisAddr)
	defer func() { _ = redisClient.Close() }()
	cache := redisstore.NewCollectionCache(pg, redisClient, cfg.CacheTTL, logger)

	svc := report.NewService(cache, logger)

	// ── Kafka ─────────────────────────────────────────────────────────────────
	brokers := strings.Split(cfg.KafkaBrokers, ",")

	producer := kafka.NewProducer(brokers)
	defer func() { _ = producer.Close() }()

	consumer := kafka.NewConsumer(brokers, kafka.TopicRecordsChanged, "insight-group", logger)
	defer func() { _ = consumer.Close() }()

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	go func() {
		logger.Info("invalidation consumer starting", slog.String("topic", kafka.TopicRecordsChanged))
		if err := consumer.Subscribe(runCtx, invalidator.Handler(cache, logger)); err != nil {
			logger.Error("invalidation consumer stopped", slog.String("error", err.Error()))
		}
	}()

	// ── scheduled stats refresh ───────────────────────────────────────────────
	ref := refresher.New(svc, producer, cfg.RefreshCron, 0, logger)
	if err := ref.Start(runCtx); err != nil {
		return fmt.Errorf("refresher: %w", err)
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	ready := func(ctx context.Context) error {
		if err := pg.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		if err := cache.Ping(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	}
	restHandler := handler.NewREST(svc, ready, logger)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1MB limit
	if cfg.RateLimit > 0 {
		limiter := redisstore.NewRateLimiter(redisClient, cfg.RateLimit, cfg.RateLimitWindow)
		r.Use(middleware.RateLimit(limiter, logger))
		logger.Info("rate limiter enabled",
			slog.Int("limit", cfg.RateLimit),
			slog.Duration("window", cfg.RateLimitWindow),
		)
	}
	r.Get("/healthz", restHandler.Healthz)
	r.Get("/readyz", restHandler.Readyz)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard/{employeeID}", restHandler.GetDashboard)
		r.Get("/performance/{employeeID}", restHandler.GetPerformance)
		r.Get("/teams", restHandler.GetTeams)
		r.Get("/stats", restHandler.GetStats)
	})

	httpSrv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── Prometheus metrics ────────────────────────────────────────────────────
	telemetry.StartMetricsServer(runCtx, cfg.MetricsAddr, logger)

	// ── signal handling ───────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		logger.Info("insight HTTP starting", slog.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-quit
	logger.Info("shutting down...")
	runCancel()

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutCancel()
	if err := httpSrv.Shutdown(shutCtx); err != nil {
		logger.Error("HTTP shutdown error", slog.String("error", err.Error()))
	}
	logger.Info("stopped")
	return nil
}
