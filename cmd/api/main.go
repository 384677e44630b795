package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zoonatech/portal-api/internal/auth"
	"github.com/zoonatech/portal-api/internal/config"
	"github.com/zoonatech/portal-api/internal/handlers"
	middlewareCustom "github.com/zoonatech/portal-api/internal/middleware"
	"github.com/zoonatech/portal-api/internal/observability"
	"github.com/zoonatech/portal-api/internal/repositories"
	"github.com/zoonatech/portal-api/internal/routes"
	"github.com/zoonatech/portal-api/internal/services"
	"github.com/zoonatech/portal-api/internal/sheets"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	if err := observability.Init(cfg.Sentry.DSN, cfg.Server.Env); err != nil {
		logger.Error("failed to initialize error reporting", slog.Any("error", err))
		os.Exit(1)
	}
	defer observability.Flush()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Spreadsheet client
	sheetClient, err := sheets.NewClient(ctx, cfg.Sheets.CredentialsJSON, logger)
	if err != nil {
		logger.Error("failed to initialize sheets client", slog.Any("error", err))
		os.Exit(1)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(sheetClient, cfg.Sheets.Registrations, logger)
	loginRepo := repositories.NewLoginHistoryRepository(sheetClient, cfg.Sheets.LoginHistory, logger)
	contactRepo := repositories.NewContactRepository(sheetClient, cfg.Sheets.Contacts, logger)
	applicationRepo := repositories.NewApplicationRepository(sheetClient, cfg.Sheets.Applications, logger)
	paymentRepo := repositories.NewPaymentRepository(sheetClient, cfg.Sheets.Payments, logger)

	// Header rows are created on first boot against a fresh spreadsheet.
	// Failures are non-fatal; the sheet may simply be readonly to this key.
	ensureHeaders(ctx, logger,
		userRepo.EnsureHeaders,
		loginRepo.EnsureHeaders,
		contactRepo.EnsureHeaders,
		applicationRepo.EnsureHeaders,
		paymentRepo.EnsureHeaders,
	)

	// AWS SES notifier
	notifier, err := services.NewSESNotifier(ctx, cfg.Email.AWSRegion, cfg.Email.FromAddress, logger)
	if err != nil {
		logger.Error("failed to initialize email service", slog.Any("error", err))
		os.Exit(1)
	}

	// Sessions and services
	sessions := auth.NewSessionRegistry()
	authService := services.NewAuthService(userRepo, loginRepo, sessions, notifier, logger)
	contactService := services.NewContactService(contactRepo, notifier, cfg.Email.AdminAddress, logger)
	careersService := services.NewCareersService(applicationRepo, notifier, cfg.Email.AdminAddress, logger)
	paymentService := services.NewPaymentService(paymentRepo, notifier, cfg.Email.AdminAddress, logger)
	resetService := services.NewResetService(userRepo, notifier, logger, cfg.Auth.OTPTTL)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Auth.SecureCookies)
	contactHandler := handlers.NewContactHandler(contactService)
	careersHandler := handlers.NewCareersHandler(careersService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, authService)
	resetHandler := handlers.NewResetHandler(resetService)

	// CORS
	corsConfig := middlewareCustom.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins

	// Router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.RequestLogger(logger))
	router.Use(observability.Recover(logger))
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router, authHandler, contactHandler, careersHandler, paymentHandler, resetHandler)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

func ensureHeaders(ctx context.Context, logger *slog.Logger, fns ...func(context.Context) error) {
	for _, fn := range fns {
		if err := fn(ctx); err != nil {
			logger.Warn("failed to ensure sheet headers", slog.Any("error", err))
		}
	}
}
