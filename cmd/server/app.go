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

	redisclient "github.com/redis/go-redis/v9"

	"github.com/lyricdeck/lyricdeck-api/internal/api"
	"github.com/lyricdeck/lyricdeck-api/internal/config"
	"github.com/lyricdeck/lyricdeck-api/internal/platform/postgres"
	"github.com/lyricdeck/lyricdeck-api/internal/platform/redis"
	"github.com/lyricdeck/lyricdeck-api/internal/service"
	"github.com/lyricdeck/lyricdeck-api/internal/service/auth"
)

// application bundles the process-wide dependencies: configuration,
// logging, storage clients, services, and the API handlers built on them.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    *sql.DB
	redis *redisclient.Client

	userStore *postgres.UserStore

	userService     service.UserService
	cardService     service.CardService
	progressService service.ProgressService
	jwtService      auth.JWTService
	refreshStore    auth.RefreshTokenStore

	authHandler    *api.AuthHandler
	profileHandler *api.ProfileHandler
	cardHandler    *api.CardHandler
	adminHandler   *api.AdminHandler
}

// newApplication wires the full dependency graph bottom-up: storage
// clients, migrations, stores, services, handlers.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = db.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	refreshStore := auth.NewRedisRefreshTokenStore(redisClient)

	userStore := postgres.NewUserStore(db, logger)
	cardStore := postgres.NewCardStore(db, logger)
	albumStore := postgres.NewAlbumStore(db, logger)
	learnedStore := postgres.NewLearnedCardStore(db, logger)

	userService := service.NewUserService(userStore, hasher, hasher, db, logger)
	cardService := service.NewCardService(cardStore, albumStore, logger)
	progressService := service.NewProgressService(learnedStore, logger)

	app := &application{
		config:          cfg,
		logger:          logger,
		db:              db,
		redis:           redisClient,
		userStore:       userStore,
		userService:     userService,
		cardService:     cardService,
		progressService: progressService,
		jwtService:      jwtService,
		refreshStore:    refreshStore,
	}

	app.authHandler = api.NewAuthHandler(userService, jwtService, refreshStore, &cfg.Auth, logger)
	app.profileHandler = api.NewProfileHandler(userService, progressService, logger)
	app.cardHandler = api.NewCardHandler(cardService, progressService, logger)
	app.adminHandler = api.NewAdminHandler(cardService, userService, logger)

	return app, nil
}

// run starts the HTTP server and blocks until shutdown.
func (app *application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:      app.setupRouter(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", slog.String("signal", s.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", slog.Int("port", app.config.Server.Port))

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return err
	}

	app.logger.Info("server stopped")
	return nil
}

// close releases the storage clients.
func (app *application) close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("failed to close redis client", slog.String("error", err.Error()))
		}
	}
}
