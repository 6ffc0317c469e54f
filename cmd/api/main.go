// @title        Taskline Todo API
// @version      1.0
// @description  Task-tracking API with JWT authentication and role-based authorization.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskline/todo-api/internal/api"
	"github.com/taskline/todo-api/internal/app"
	"github.com/taskline/todo-api/internal/core/identity"
	"github.com/taskline/todo-api/internal/infrastructure/config"
	mongodb "github.com/taskline/todo-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskline/todo-api/internal/infrastructure/db/redis"
	"github.com/taskline/todo-api/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Signing key is validated once here; an empty key never gets as far as
	// issuing a token.
	issuer, err := identity.NewIssuer(
		[]byte(cfg.JWT.Secret),
		cfg.JWT.Issuer,
		time.Duration(cfg.JWT.ExpirationHours)*time.Hour,
	)
	if err != nil {
		logg.Fatal().Err(err).Msg("token issuer configuration invalid")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	todoRepo := mongodb.NewTodoRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logg.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := todoRepo.EnsureIndexes(ctx); err != nil {
		logg.Fatal().Err(err).Msg("failed to ensure todo indexes")
	}

	identitySvc := identity.NewService(
		identity.NewCredentialStore(userRepo),
		issuer,
		identity.NewEvaluator(),
		logg,
	)

	if err := mongodb.Seed(ctx, roleRepo, identitySvc, cfg.Admin.Email, cfg.Admin.Password, logg); err != nil {
		logg.Fatal().Err(err).Msg("failed to seed roles")
	}

	dispatcher, err := app.BuildDispatcher(app.Dependencies{
		Identity: identitySvc,
		Todos:    todoRepo,
		Validate: validator.New(),
		Log:      logg,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to build dispatcher")
	}

	throttle := redisdb.NewLoginThrottle(rdb,
		cfg.Throttle.MaxAttempts,
		time.Duration(cfg.Throttle.WindowMinutes)*time.Minute,
	)

	e := api.NewRouter(api.RouterConfig{
		DB:         db,
		Redis:      rdb,
		Issuer:     issuer,
		Dispatcher: dispatcher,
		Throttle:   throttle,
		Log:        logg,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("http server stopped")
		}
	}()
	logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("todo api started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logg.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("graceful shutdown failed")
	}
}
