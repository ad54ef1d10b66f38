// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/auth"
	"github.com/dangerclosesec/tabbedjournal/internal/config"
	"github.com/dangerclosesec/tabbedjournal/internal/email"
	"github.com/dangerclosesec/tabbedjournal/internal/handler"
	"github.com/dangerclosesec/tabbedjournal/internal/metrics"
	"github.com/dangerclosesec/tabbedjournal/internal/notify"
	"github.com/dangerclosesec/tabbedjournal/internal/repository"
	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/dangerclosesec/tabbedjournal/internal/sms"
	"github.com/dangerclosesec/tabbedjournal/internal/storage"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg := config.Load()

	// Initialize structured logger
	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	// Initialize database
	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("getting database instance: %w", err)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return fmt.Errorf("loading aws config: %w", err)
	}

	// Metrics
	registry := metrics.NewRegistry()
	m := metrics.New(registry)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	factorRepo := repository.NewUserFactorRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	tabRepo := repository.NewTabRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)
	tx := repository.NewTransactor(db)

	// Initialize auth services
	passwordHasher := auth.NewPasswordHasher()
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Outbound notifications
	emailProvider := email.Provider(cfg.Notify.EmailProvider)
	emailSender, err := email.NewSender(cfg, emailProvider, awsCfg)
	if err != nil {
		return fmt.Errorf("initializing email sender: %w", err)
	}
	emailService, err := email.NewEmailService(cfg, emailProvider, emailSender)
	if err != nil {
		return fmt.Errorf("initializing email service: %w", err)
	}
	smsSender, err := sms.NewSender(cfg.Notify.SMSProvider, awsCfg)
	if err != nil {
		return fmt.Errorf("initializing sms sender: %w", err)
	}
	notifier := notify.NewDispatcher(emailService, smsSender, m)

	// Image storage
	var images storage.ImageStore = storage.Disabled{}
	if cfg.StorageEnabled() {
		images = storage.NewS3Store(awsCfg, storage.S3Config{
			Bucket:        cfg.AWS.S3Bucket,
			Prefix:        cfg.AWS.S3Prefix,
			PublicBaseURL: cfg.AWS.PublicBaseURL,
			Region:        cfg.AWS.Region,
		})
	} else {
		logger.Warn("image storage disabled, uploads will be refused")
	}

	// Initialize services
	auditLogService := service.NewAuditLogService(auditLogRepo)
	orgCache := service.NewOrgCache(service.CacheConfig{TTL: cfg.Cache.TTL, Size: cfg.Cache.Size}, m)
	graph := service.NewMembershipGraph(membershipRepo, orgCache)
	authz := service.NewAuthzService(graph, userRepo, auditLogService, m)
	identity := service.NewIdentityService(userRepo, factorRepo, orgRepo, membershipRepo, tx, passwordHasher, tokenManager)
	members := service.NewMembershipService(graph, orgRepo, profileRepo, identity, authz, tx, auditLogService)
	tabs := service.NewTabService(tabRepo, graph, authz)
	entries := service.NewEntryService(entryRepo, tabRepo, tabs, graph, authz, images, tx, auditLogService, m)
	invites := service.NewInviteService(inviteRepo, graph, authz, identity, tx, notifier, emailService, auditLogService, m, service.InviteConfig{
		BaseURL:  cfg.BaseURL,
		SiteName: cfg.SiteName,
		TTL:      cfg.Invite.TTL,
	})
	profiles := service.NewProfileService(profileRepo, authz, images, tx)
	onboarding := service.NewOnboardingService(profileRepo, graph, tabs, entries, invites)

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handler.Mount(r, handler.Services{
		Identity:       identity,
		Authz:          authz,
		Members:        members,
		Tabs:           tabs,
		Entries:        entries,
		Invites:        invites,
		Profiles:       profiles,
		Onboarding:     onboarding,
		AuditLogs:      auditLogService,
		Tokens:         tokenManager,
		Metrics:        m,
		BillingEnabled: cfg.EnableBilling,
	})

	// Health check and metrics endpoints
	r.Get("/health", handler.Health(sqlDB))
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "storage", images.Enabled())
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.LogLevel == "debug" {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						"error", errors.New("panic recovered"),
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte("{\"error\":\"error encountered\"}"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
