package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/alexanderdross/V0-Desiree/internal/cartstore"
	"github.com/alexanderdross/V0-Desiree/internal/catalog"
	"github.com/alexanderdross/V0-Desiree/internal/config"
	"github.com/alexanderdross/V0-Desiree/internal/event"
	handler "github.com/alexanderdross/V0-Desiree/internal/handler/http"
	"github.com/alexanderdross/V0-Desiree/internal/provider"
	"github.com/alexanderdross/V0-Desiree/internal/provider/mock"
	"github.com/alexanderdross/V0-Desiree/internal/provider/stripe"
	redisrepo "github.com/alexanderdross/V0-Desiree/internal/repository/redis"
	"github.com/alexanderdross/V0-Desiree/internal/service"
	"github.com/alexanderdross/V0-Desiree/internal/verification"
	"github.com/alexanderdross/V0-Desiree/pkg/database"
	"github.com/alexanderdross/V0-Desiree/pkg/health"
	"github.com/alexanderdross/V0-Desiree/pkg/httpclient"
	pkgkafka "github.com/alexanderdross/V0-Desiree/pkg/kafka"
	"github.com/alexanderdross/V0-Desiree/pkg/tracing"
)

// ServiceName tags logs, metrics and traces.
const ServiceName = "storefront"

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	shutdownTracer func(context.Context) error
	stopBackground context.CancelFunc
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tracing.
	traceCfg := tracing.DefaultConfig(ServiceName)
	traceCfg.Environment = cfg.Environment
	traceCfg.Enabled = cfg.OTELEnabled
	traceCfg.OTLPEndpoint = cfg.OTELEndpoint
	traceCfg.SampleRate = cfg.OTELSampleRate
	shutdownTracer, err := tracing.InitTracer(ctx, traceCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Redis holds the cart slots.
	redisCfg := database.DefaultRedisConfig()
	redisCfg.Addr = cfg.RedisAddr
	redisCfg.Password = cfg.RedisPass
	redisCfg.DB = cfg.RedisDB
	rdb, err := database.NewRedisClient(ctx, redisCfg)
	if err != nil {
		_ = shutdownTracer(context.Background())
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, rdb, ServiceName); err != nil {
		logger.Warn("redis pool metrics not registered", slog.String("error", err.Error()))
	}
	database.SetSlowCommandLogging(100*time.Millisecond, logger)
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Kafka producer; events are off when no brokers are configured.
	var producer *pkgkafka.Producer
	var publisher event.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = producer
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Info("kafka brokers not configured, domain events disabled")
	}
	eventProducer := event.NewProducer(publisher, logger)

	// Payment provider.
	payments, err := newProvider(cfg, logger)
	if err != nil {
		_ = rdb.Close()
		_ = shutdownTracer(context.Background())
		return nil, err
	}

	// Build the dependency graph.
	repo := redisrepo.NewCartRepository(rdb, cfg.CartSlotName, cfg.CartTTLDuration())
	stores := cartstore.NewFactory(repo, logger, eventProducer)
	cat := catalog.Default()

	turnstileCfg := verification.Config{
		SecretKey: cfg.TurnstileSecretKey,
		SiteKey:   cfg.TurnstileSiteKey,
		VerifyURL: cfg.TurnstileVerifyURL,
	}
	if turnstileCfg.SecretKey == "" {
		logger.Warn("TURNSTILE_SECRET_KEY not set, contact submissions will be rejected")
	}
	verifier := verification.NewTurnstile(turnstileCfg,
		httpclient.NewCircuitBreakerClient(
			httpclient.New(httpclient.DefaultConfig()),
			httpclient.DefaultCircuitBreakerConfig("turnstile"),
			logger,
		),
		logger,
	)

	cartService := service.NewCartService(stores, cat, logger)
	checkoutService := service.NewCheckoutService(stores, payments, eventProducer, service.CheckoutConfig{
		ReturnURL: stripe.ReturnURL(cfg.BaseURL),
		Currency:  cfg.Currency,
	}, logger)
	contactService := service.NewContactService(verifier, eventProducer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	if producer != nil {
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
	}

	visitors, err := newVisitors(cfg, logger)
	if err != nil {
		_ = rdb.Close()
		_ = shutdownTracer(context.Background())
		return nil, err
	}

	// HTTP router.
	bgCtx, stopBackground := context.WithCancel(context.Background())
	router := handler.NewRouter(bgCtx, handler.RouterConfig{
		Catalog: handler.NewCatalogHandler(cat, cfg.BaseURL, cfg.Currency, logger),
		Cart:    handler.NewCartHandler(cartService, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, handler.CheckoutClientConfig{
			Provider:       payments.Name(),
			PublishableKey: cfg.StripePublishableKey,
			Currency:       cfg.Currency,
		}, logger),
		Contact:  handler.NewContactHandler(contactService, logger),
		Site:     handler.NewSiteHandler(cat, cfg.BaseURL, turnstileCfg.PublicSiteKey(), logger),
		Health:   healthHandler,
		Visitors: visitors,

		AllowedOrigins: cfg.CORSAllowedOrigins,
		PprofCIDRs:     cfg.PprofAllowedCIDRs,
		ContactRPS:     cfg.ContactRateLimitRPS,
		ContactBurst:   cfg.ContactRateLimitBurst,
	}, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		rdb:            rdb,
		producer:       producer,
		httpServer:     httpServer,
		shutdownTracer: shutdownTracer,
		stopBackground: stopBackground,
	}, nil
}

func newProvider(cfg *config.Config, logger *slog.Logger) (provider.Provider, error) {
	switch cfg.PaymentProvider {
	case config.ProviderStripe:
		p, err := stripe.New(stripe.Config{
			SecretKey:  cfg.StripeSecretKey,
			APIURL:     cfg.StripeAPIURL,
			MaxRetries: 2,
		})
		if err != nil {
			return nil, fmt.Errorf("init stripe: %w", err)
		}
		logger.Info("payment provider initialized",
			slog.String("provider", p.Name()),
			slog.Bool("test_mode", strings.HasPrefix(cfg.StripeSecretKey, "sk_test_")),
		)
		return p, nil
	case config.ProviderMock:
		logger.Warn("using in-memory mock payment provider")
		return mock.New(), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.PaymentProvider)
	}
}

func newVisitors(cfg *config.Config, logger *slog.Logger) (*handler.Visitors, error) {
	hash, block, err := cfg.CookieKeys()
	if err != nil {
		return nil, err
	}
	if len(hash) == 0 {
		// Visitors lose their carts on every restart with an ephemeral key.
		hash = securecookie.GenerateRandomKey(64)
		if hash == nil {
			return nil, errors.New("generate visitor cookie key")
		}
		logger.Warn("COOKIE_HASH_KEY not set, using an ephemeral key")
	}
	return handler.NewVisitors(handler.VisitorConfig{
		HashKey:  hash,
		BlockKey: block,
		Secure:   cfg.CookieSecure,
	}, logger), nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}
	a.stopBackground()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	if err := a.shutdownTracer(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
