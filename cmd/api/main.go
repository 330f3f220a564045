package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/account-portal/internal/api"
	"github.com/sirpyerre/account-portal/internal/api/handler"
	"github.com/sirpyerre/account-portal/internal/api/metrics"
	"github.com/sirpyerre/account-portal/internal/api/render"
	"github.com/sirpyerre/account-portal/internal/api/session"
	"github.com/sirpyerre/account-portal/internal/core/ports"
	"github.com/sirpyerre/account-portal/internal/core/service"
	mongodb "github.com/sirpyerre/account-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/sirpyerre/account-portal/internal/infrastructure/db/redis"
	"github.com/sirpyerre/account-portal/internal/infrastructure/identity"
	"github.com/sirpyerre/account-portal/internal/pkg/config"
	"github.com/sirpyerre/account-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       Account Portal API
// @version                     1.0
// @description                 Session establishment backed by identity-provider token verification.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Pretty: true})
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "account-portal",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	verifier, err := newVerifier(ctx, cfg.Identity, logger.Component("identity"))
	if err != nil {
		return err
	}

	renderer, err := render.New()
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Verifier:  verifier,
		Users:     service.NewUserService(userRepo, logger.Component("users")),
		Directory: service.NewDirectoryService(userRepo, mongodb.NewTodoRepository(db)),
		Sessions: session.NewManager(redisdb.NewSessionStore(rdb), session.Options{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Session.Secure,
		}),
		Renderer: renderer,
		HealthChecks: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error { return mongodb.Ping(ctx, db) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Log: logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("identity_provider", cfg.Identity.Provider).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newVerifier builds the configured token verifier wrapped with clock-skew retries.
func newVerifier(ctx context.Context, cfg config.IdentityConfig, log zerolog.Logger) (ports.IdentityVerifier, error) {
	var (
		base ports.IdentityVerifier
		err  error
	)
	switch cfg.Provider {
	case config.ProviderLocal:
		log.Warn().Msg("using local HS256 token verifier; not for production")
		base, err = identity.NewLocalVerifier(cfg.LocalSecret)
	default:
		base, err = identity.NewFirebaseVerifier(ctx, identity.FirebaseConfig{
			CredentialsFile: cfg.CredentialsFile,
			ProjectID:       cfg.ProjectID,
			CheckRevoked:    cfg.CheckRevoked,
		})
	}
	if err != nil {
		return nil, err
	}

	return identity.NewRetryingVerifier(base, identity.RetryOptions{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   cfg.BaseDelay,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			metrics.TokenVerifyRetriesTotal.Inc()
			log.Warn().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("token used too early, retrying")
		},
	}), nil
}
