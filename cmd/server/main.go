package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/anonto42/newsroom-social/backend/internal/middleware"
	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/notification"
	"github.com/anonto42/newsroom-social/backend/internal/repositories"
	"github.com/anonto42/newsroom-social/backend/internal/router"
	"github.com/anonto42/newsroom-social/backend/pkg/config"
	"github.com/anonto42/newsroom-social/backend/pkg/firebase"
	"github.com/anonto42/newsroom-social/backend/pkg/logger"
	"github.com/anonto42/newsroom-social/backend/validators"
)

func main() {
	app := &cli.App{
		Name:  "newsroom",
		Usage: "social layer for the news reader",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and the notification dispatcher",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the relational schema",
				Action: migrate,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func bootstrap() (*config.Config, *config.DB, error) {
	cfg := config.Load()
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init databases: %w", err)
	}
	if err := models.Migrate(db.SQL); err != nil {
		db.CloseDB()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return cfg, db, nil
}

func migrate(_ *cli.Context) error {
	_, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer db.CloseDB()

	logger.Info("schema is up to date")
	return nil
}

func serve(c *cli.Context) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer db.CloseDB()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos := repositories.New(db.SQL)

	var news repositories.NewsCatalog
	if db.Mongo != nil {
		news = repositories.NewMongoNewsRepository(db.Mongo.Database(cfg.MongoDatabase))
	}

	// Firebase is optional: without it pushes are logged and only
	// query/jwt identity is available.
	var fb *firebase.App
	if cfg.FirebaseCredentialsPath != "" {
		fb, err = firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return fmt.Errorf("init firebase: %w", err)
		}
	}

	var transport notification.PushTransport = notification.LogTransport{}
	if fb != nil {
		transport = notification.NewFCMTransport(fb.MessagingClient)
	} else {
		logger.Warn("firebase not configured, push notifications are logged only")
	}

	dispatcher := notification.NewDispatcher(notification.Deps{
		Users:     repos.Users,
		Articles:  repos.Articles,
		Followers: repos.Follows,
		Tokens:    repos.DeviceTokens,
		Inbox:     repos.Notifications,
		Transport: transport,
	}, notification.Config{
		Workers:     cfg.Dispatch.Workers,
		QueueSize:   cfg.Dispatch.QueueSize,
		Timeout:     cfg.Dispatch.Timeout,
		RatePerSec:  cfg.Dispatch.PushRatePerSec,
		Concurrency: cfg.Dispatch.PushConcurrency,
	})
	dispatcher.Start()

	identity, err := identityMiddleware(cfg, fb, repos)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	router.SetupMiddleware(e)
	router.SetupRoutes(e, router.Dependencies{
		Repos:    repos,
		News:     news,
		Events:   dispatcher,
		Identity: identity,
	})

	metricsSrv := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("auth", cfg.AuthMode))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err = <-errCh:
		logger.Error("server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics shutdown", zap.Error(err))
	}
	// handlers are gone, so nothing enqueues after this point
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		logger.Warn("notification queue not drained", zap.Error(err))
	}
	return err
}

func identityMiddleware(cfg *config.Config, fb *firebase.App, repos *repositories.Repositories) (echo.MiddlewareFunc, error) {
	switch cfg.AuthMode {
	case "query", "":
		if cfg.Env == "production" {
			logger.Warn("AUTH_MODE=query trusts ?userId= and should not face the internet")
		}
		return middleware.QueryIdentity(), nil
	case "jwt":
		return middleware.JWTAuthMiddleware(cfg.JWTSecret), nil
	case "firebase":
		if fb == nil {
			return nil, errors.New("AUTH_MODE=firebase requires FIREBASE_CREDENTIALS_PATH")
		}
		return middleware.FirebaseAuthMiddleware(fb.AuthClient, repos.Users), nil
	default:
		return nil, fmt.Errorf("unsupported AUTH_MODE %q", cfg.AuthMode)
	}
}
