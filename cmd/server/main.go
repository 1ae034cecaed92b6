// Package main runs the campus events HTTP API.
//
// @title Campus Events API
// @version 1.0
// @description Campus event management: attendee and organizer accounts, organizer approval, event catalog and ticket scanning.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"campusevents/config"
	_ "campusevents/docs"
	"campusevents/internal/adapters/auth"
	"campusevents/internal/adapters/email"
	"campusevents/internal/adapters/media"
	"campusevents/internal/adapters/qrcode"
	deliveryhttp "campusevents/internal/delivery/http"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
	"campusevents/internal/repository/kvstore"
	"campusevents/internal/repository/postgres"
	"campusevents/internal/services"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "err", err)
		os.Exit(1)
	}
	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	store, pinger, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	adminHash := cfg.SuperAdminPasswordHash
	if adminHash == "" {
		adminHash, err = auth.HashAdminPassword(cfg.SuperAdminPassword, bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		logger.Warn("super-admin secret configured in plaintext, set SUPER_ADMIN_PASSWORD_HASH instead")
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("email templates: %w", err)
	}

	var mediaStore domain.MediaStore
	if cfg.Media.Enabled() {
		s3Store, err := media.NewS3Store(media.S3Config{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
			Bucket:          cfg.Media.Bucket,
			PublicBaseURL:   cfg.Media.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("media store: %w", err)
		}
		mediaStore = s3Store
	} else {
		logger.Info("MEDIA_BUCKET not set, event image uploads disabled")
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	jwt := auth.NewJWT(cfg.JWTSecret)
	timeout := cfg.ContextTimeout
	emailService := services.NewEmailService(mailer, renderer, logger)

	authService := services.NewAuthService(
		store, hasher, jwt,
		auth.NewAdminVerifier(adminHash),
		auth.NewIdentityVerifier(cfg.IdentityTokenSecret, cfg.IdentityTokenAudience),
		emailService, logger, cfg.JWTExpiry, timeout,
	)
	onboardingService := services.NewOnboardingService(store, hasher, emailService, logger, cfg.LegacyApprovalRecovery, timeout)

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:      controllers.NewAuthController(logger, authService),
		Organizer: controllers.NewOrganizerController(logger, onboardingService),
		Admin:     controllers.NewAdminController(logger, services.NewAdminService(store, logger, timeout)),
		User:      controllers.NewUserController(logger, services.NewUserService(store, timeout)),
		Event:     controllers.NewEventController(logger, services.NewCatalogService(store, mediaStore, timeout)),
		Ticket:    controllers.NewTicketController(logger, services.NewTicketService(qrcode.NewRenderer())),
		Health:    controllers.NewHealthController(logger, cfg.StoreBackend, pinger),
	}, jwt, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, router)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "backend", cfg.StoreBackend, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// openStore builds the AccountStore selected by STORE_BACKEND. The returned
// pinger is nil for backends with nothing to reach.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.AccountStore, controllers.Pinger, func(), error) {
	noop := func() {}
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, noop, fmt.Errorf("ping database: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, noop, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("connected to postgres")
		return postgres.NewStore(db), db, func() { db.Close() }, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		logger.Info("connected to redis", "addr", cfg.Redis.Addr)
		pinger := controllers.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
		return kvstore.NewStore(kvstore.NewRedisBackend(client), logger), pinger, func() { client.Close() }, nil

	case config.StoreFile:
		backend, err := kvstore.NewFileBackend(cfg.StoreFile)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("open store file: %w", err)
		}
		logger.Info("using file store", "path", cfg.StoreFile)
		return kvstore.NewStore(backend, logger), nil, noop, nil

	case config.StoreMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return kvstore.NewStore(kvstore.NewMemoryBackend(), logger), nil, noop, nil
	}
	return nil, nil, noop, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
