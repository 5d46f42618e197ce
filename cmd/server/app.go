package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	grpcapi "estatehub-backend/internal/api/grpc"
	"estatehub-backend/internal/api/grpc/interceptor"
	httpapi "estatehub-backend/internal/api/http"
	"estatehub-backend/internal/config"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"
	"estatehub-backend/internal/repository/mongodb"
	"estatehub-backend/internal/repository/postgres"
	"estatehub-backend/internal/security"
	"estatehub-backend/internal/service"

	_ "github.com/lib/pq"
)

const shutdownTimeout = 15 * time.Second

func loadConfig(opts *rootOptions) (*config.Config, error) {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("Database connection established", "host", cfg.Database.Host, "database", cfg.Database.Database)
	return db, nil
}

func migrate(ctx context.Context, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return postgres.Migrate(ctx, db)
}

// newMailSender picks the configured email backend. A nil sender disables
// email delivery.
func newMailSender(cfg *config.Config) service.MailSender {
	switch cfg.Email.Provider {
	case "smtp":
		logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)
		return service.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	case "sendgrid":
		logger.Info("Using SendGrid email backend", "from", cfg.SMTP.From)
		return service.NewSendGridSender(cfg.Email.SendGridAPIKey, cfg.Email.FromName, cfg.SMTP.From)
	default:
		logger.Info("Email delivery disabled")
		return nil
	}
}

// newHistoryRepository connects to mongo when configured. The returned
// cleanup func disconnects the client.
func newHistoryRepository(ctx context.Context, cfg *config.Config) (repository.StatusHistoryRepository, func(), error) {
	if cfg.Mongo.URI == "" {
		logger.Info("Status history disabled, no mongo uri configured")
		return mongodb.NoopStatusHistoryRepository{}, func() {}, nil
	}
	client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Mongo connection established", "database", cfg.Mongo.Database)
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Warn("Failed to disconnect mongo", "error", err)
		}
	}
	return mongodb.NewStatusHistoryRepository(client, cfg.Mongo.Database), cleanup, nil
}

func serve(ctx context.Context, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger.Info("Starting EstateHub backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	history, closeHistory, err := newHistoryRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeHistory()

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())

	// Initialize Services
	emailSvc := service.NewEmailService(newMailSender(cfg))
	authSvc := service.NewAuthService(store.Users, store.RevokedTokens, tokenManager)
	userSvc := service.NewUserService(store.Users)
	propertySvc := service.NewPropertyService(store, store.Properties)
	shortlistSvc := service.NewShortlistService(store.Shortlists, store.Properties)
	bookingSvc := service.NewBookingService(
		store,
		store.Bookings,
		store.Properties,
		store.Users,
		history,
		store.Notifications,
		emailSvc,
		service.BookingOptions{ForcePendingStatus: cfg.Booking.ForcePendingStatus},
	)
	agreementSvc := service.NewRentalAgreementService(store, store.Agreements, store.Notifications, emailSvc)
	noteSvc := service.NewNotificationService(store.Notifications)

	handlers := &httpapi.Handlers{
		Auth:          authSvc,
		Users:         userSvc,
		Properties:    propertySvc,
		Shortlists:    shortlistSvc,
		Bookings:      bookingSvc,
		Agreements:    agreementSvc,
		Notifications: noteSvc,
	}
	httpServer := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      httpapi.NewRouter(handlers, httpapi.NewAuthMiddleware(tokenManager, authSvc), store),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	// Set up gRPC health server
	reporter := grpcapi.NewHealthReporter(store, 0)
	grpcServer := grpcapi.NewServer(reporter,
		grpc.ChainUnaryInterceptor(interceptor.Logging()),
	)
	lis, err := net.Listen("tcp", cfg.GetGRPCAddress())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.GetGRPCAddress(), err)
	}

	errCh := make(chan error, 2)
	go reporter.Run(ctx)
	go func() {
		logger.Info("gRPC server listening", "address", cfg.GetGRPCAddress())
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("gRPC server: %w", err)
		}
	}()
	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err = <-errCh:
		logger.Error("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("HTTP shutdown failed", "error", shutdownErr)
	}
	grpcServer.GracefulStop()
	logger.Info("EstateHub backend stopped")
	return err
}
