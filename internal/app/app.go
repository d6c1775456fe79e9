package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/zoobutik/zoobutik.bg/internal/auth"
	"github.com/zoobutik/zoobutik.bg/internal/config"
	"github.com/zoobutik/zoobutik.bg/internal/event"
	handler "github.com/zoobutik/zoobutik.bg/internal/handler/http"
	"github.com/zoobutik/zoobutik.bg/internal/mailer"
	redisrepo "github.com/zoobutik/zoobutik.bg/internal/repository/redis"
	"github.com/zoobutik/zoobutik.bg/internal/repository/postgres"
	"github.com/zoobutik/zoobutik.bg/internal/service"
	"github.com/zoobutik/zoobutik.bg/migrations"
	"github.com/zoobutik/zoobutik.bg/pkg/database"
	"github.com/zoobutik/zoobutik.bg/pkg/health"
	pkgkafka "github.com/zoobutik/zoobutik.bg/pkg/kafka"
	"github.com/zoobutik/zoobutik.bg/pkg/middleware"
	"github.com/zoobutik/zoobutik.bg/pkg/tracing"
)

// App wires together all dependencies and runs the storefront server.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	pool            *pgxpool.Pool
	redis           *goredis.Client
	producer        *pkgkafka.Producer
	consumers       []*pkgkafka.Consumer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Tracing.
	tracingShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "zoobutik-storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.TracingEndpoint,
		SampleRate:     cfg.TracingSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPassword,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSLMode,
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	if err := database.RunMigrations(ctx, pool, migrations.Files, logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// Redis for session carts and wishlists.
	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("host", cfg.RedisHost),
		slog.Int("port", cfg.RedisPort),
	)

	// Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	sessionTTL := time.Duration(cfg.SessionTTL) * time.Hour

	// Build the dependency graph.
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	newsletterRepo := postgres.NewNewsletterRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	cartRepo := redisrepo.NewCartRepository(redisClient, sessionTTL)
	wishlistRepo := redisrepo.NewWishlistRepository(redisClient, sessionTTL)

	eventProducer := event.NewProducer(kafkaProducer, logger)
	jwtManager := auth.NewJWTManager(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLHours)*time.Hour,
		time.Duration(cfg.JWTRefreshTTLHours)*time.Hour,
	)

	cartService := service.NewCartService(cartRepo, logger, sessionTTL)
	wishlistService := service.NewWishlistService(wishlistRepo, logger)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, logger)
	navigationService := service.NewNavigationService(categoryRepo, logger)
	checkoutService := service.NewCheckoutService(cartService, productRepo, orderRepo, newsletterRepo, eventProducer, logger)
	orderService := service.NewOrderService(orderRepo, eventProducer, logger)
	newsletterService := service.NewNewsletterService(newsletterRepo, eventProducer, logger)
	accountService := service.NewAccountService(userRepo, jwtManager, eventProducer, logger)

	// Mailer consumers turn events into customer emails.
	var sender mailer.Sender
	if cfg.MailerMode == "http" {
		sender = mailer.NewHTTPSender(cfg.MailerEndpoint, logger)
	} else {
		sender = mailer.NewLogSender(logger)
	}
	m := mailer.New(sender, cfg.MailerFrom, logger)
	consumers := newMailConsumers(cfg.KafkaBrokers, m, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(handler.Services{
		Catalog:    catalogService,
		Navigation: navigationService,
		Cart:       cartService,
		Wishlist:   wishlistService,
		Checkout:   checkoutService,
		Orders:     orderService,
		Newsletter: newsletterService,
		Accounts:   accountService,
	}, jwtManager, healthHandler, corsCfg, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		pool:            pool,
		redis:           redisClient,
		producer:        kafkaProducer,
		consumers:       consumers,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// newMailConsumers creates one consumer per mail-triggering topic, all in the
// same consumer group.
func newMailConsumers(brokers []string, m *mailer.Mailer, logger *slog.Logger) []*pkgkafka.Consumer {
	const group = "zoobutik-mailer"

	topics := map[string]pkgkafka.Handler{
		event.TopicNewsletterSubscribed: m.HandleNewsletterSubscribed,
		event.TopicOrderCreated:         m.HandleOrderCreated,
		event.TopicOrderStatusChanged:   m.HandleOrderStatusChanged,
		event.TopicUserRegistered:       m.HandleUserRegistered,
	}

	consumers := make([]*pkgkafka.Consumer, 0, len(topics))
	for topic, h := range topics {
		consumers = append(consumers, pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
			Brokers:  brokers,
			GroupID:  group,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10e6,
		}, h, logger))
	}
	return consumers
}

// Run starts the HTTP server and Kafka consumers, then blocks until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	for _, consumer := range a.consumers {
		c := consumer
		go func() {
			if err := c.Start(ctx); err != nil {
				a.logger.Error("kafka consumer error", slog.String("error", err.Error()))
			}
		}()
	}

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

	for _, consumer := range a.consumers {
		if err := consumer.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.redis.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
