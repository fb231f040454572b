package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/asifratul/dokan/internal"
	"github.com/asifratul/dokan/internal/backend"
	"github.com/asifratul/dokan/internal/cart"
	"github.com/asifratul/dokan/internal/checkout"
	"github.com/asifratul/dokan/internal/coupon"
	"github.com/asifratul/dokan/internal/handler/storefront"
	"github.com/asifratul/dokan/internal/location"
	"github.com/asifratul/dokan/internal/middleware"
	"github.com/asifratul/dokan/internal/router"
	"github.com/asifratul/dokan/internal/routes"
	"github.com/asifratul/dokan/internal/telemetry"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize Sentry error tracking
	sentryCleanup, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:         cfg.Sentry.DSN,
		Enabled:     cfg.Sentry.Enabled,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
		SampleRate:  cfg.Sentry.SampleRate,
		Debug:       cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer sentryCleanup()

	// Initialize business metrics
	telemetry.InitBusinessMetrics("dokan")

	// Initialize backend API client
	logger.Info("Initializing backend client...", "base_url", cfg.Backend.BaseURL)
	client, err := backend.NewHTTPClient(backend.HTTPConfig{
		BaseURL: cfg.Backend.BaseURL,
		APIKey:  cfg.Backend.APIKey,
		Timeout: cfg.Backend.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize backend client: %w", err)
	}
	logger.Info("Backend client initialized")

	// Initialize delivery area directory
	directory := location.NewDefaultDirectory()

	// Initialize cart store
	carts, err := cart.NewStore(logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cart store: %w", err)
	}

	// Initialize coupon validator
	coupons, err := coupon.NewRemoteValidator(client)
	if err != nil {
		return fmt.Errorf("failed to initialize coupon validator: %w", err)
	}

	// Initialize checkout service
	logger.Info("Initializing checkout service...")
	checkoutService, err := checkout.NewService(logger, carts, client, coupons, directory, checkout.Config{
		OTPResendCooldown: cfg.Checkout.OTPResendCooldown,
		LeadDebounce:      cfg.Checkout.LeadDebounce,
		LeadMinPhoneLen:   cfg.Checkout.LeadMinPhoneLen,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize checkout service: %w", err)
	}
	logger.Info("Checkout service initialized")

	// ==========================================================================
	// Build route dependencies
	// ==========================================================================

	storefrontDeps := routes.StorefrontDeps{
		CheckoutHandler: storefront.NewCheckoutHandler(checkoutService, logger),
		CartHandler:     storefront.NewCartHandler(carts, logger),
		LocationHandler: storefront.NewLocationHandler(directory, logger),

		// OTP sends get the strict limiter; everything else rides the default
		OTPRateLimit: middleware.NewRateLimiter(middleware.StrictRateLimiterConfig()),
	}

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("dokan")

	// Configure rate limiting
	defaultRateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		telemetry.SentryMiddleware(),
		defaultRateLimiter.Middleware,
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
		router.CORS([]string{cfg.BaseURL}),
	)

	// Metrics endpoint (no auth required, but should be protected in production via firewall)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterStorefrontRoutes(r, storefrontDeps)

	// ==========================================================================
	// Start server
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting checkout server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
