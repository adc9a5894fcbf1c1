package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/uzgnsodyum/shopping-site-2/pkg/database"
	"github.com/uzgnsodyum/shopping-site-2/pkg/health"
	pkgkafka "github.com/uzgnsodyum/shopping-site-2/pkg/kafka"
	"github.com/uzgnsodyum/shopping-site-2/pkg/tracing"

	"github.com/uzgnsodyum/shopping-site-2/internal/config"
	"github.com/uzgnsodyum/shopping-site-2/internal/event"
	handler "github.com/uzgnsodyum/shopping-site-2/internal/handler/http"
	postgresrepo "github.com/uzgnsodyum/shopping-site-2/internal/repository/postgres"
	redisrepo "github.com/uzgnsodyum/shopping-site-2/internal/repository/redis"
	"github.com/uzgnsodyum/shopping-site-2/internal/service"
	"github.com/uzgnsodyum/shopping-site-2/migrations"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server

	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Tracing.
	tracerCfg := tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	}
	tracerShutdown, err := tracing.InitTracer(ctx, tracerCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// PostgreSQL pool.
	pgCfg := cfg.PostgresConfig()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	database.RegisterPoolMetrics(pool, "storefront")
	database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)

	// Database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Redis client.
	rdb, err := database.NewRedisClient(ctx, cfg.RedisConfig())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisConfig().Addr()),
		slog.Int("db", cfg.RedisDB),
	)

	// Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Repositories.
	productRepo := postgresrepo.NewProductRepository(pool)
	reviewRepo := postgresrepo.NewReviewRepository(pool)
	campaignRepo := postgresrepo.NewCampaignRepository(pool)
	cartRepo := redisrepo.NewCartRepository(rdb, cfg.CartTTL())

	// Services.
	eventProducer := event.NewProducer(producer, logger)
	catalogService := service.NewCatalogService(productRepo, reviewRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, eventProducer, logger)
	cartService := service.NewCartService(cartRepo, productRepo, eventProducer, logger)
	campaignService := service.NewCampaignService(campaignRepo, eventProducer, logger)
	pricingService := service.NewPricingService(cartRepo, campaignRepo, eventProducer, logger, service.PricingOptions{
		DiscountsEnabled:       cfg.DiscountsEnabled,
		CheckoutReviewsEnabled: cfg.CheckoutReviewsEnabled,
	})

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	// HTTP router.
	router := handler.NewRouter(handler.RouterConfig{
		Catalog:           catalogService,
		Reviews:           reviewService,
		Carts:             cartService,
		Campaigns:         campaignService,
		Pricing:           pricingService,
		Health:            healthHandler,
		Logger:            logger,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		rdb:            rdb,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
