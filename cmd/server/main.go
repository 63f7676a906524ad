package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/api"
	"github.com/99minutos/account-service/internal/core/auth"
	"github.com/99minutos/account-service/internal/core/service"
	"github.com/99minutos/account-service/internal/infrastructure/config"
	mongodb "github.com/99minutos/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/account-service/internal/infrastructure/db/redis"
	"github.com/99minutos/account-service/internal/infrastructure/http/handlers"
	"github.com/99minutos/account-service/internal/infrastructure/queue"
	"github.com/99minutos/account-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

func main() {
	seedAdmin := flag.String("seed-admin", "", "create an admin account, given as email:password")
	flag.Parse()

	if err := run(*seedAdmin); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(seedAdmin string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "account-service",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		Timeout:     cfg.Mongo.Timeout,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Timeout:  cfg.Redis.Timeout,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	accountRepo := mongodb.NewAccountRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	for _, r := range []indexer{accountRepo, postRepo, auditRepo} {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}

	creds, err := auth.NewCredentialStore(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokenService(cfg.Auth.TokenConfig())
	if err != nil {
		return err
	}
	lifecycle := auth.NewLifecycle(accountRepo, cfg.StoreTimeout)
	gate := auth.NewGate(tokens, lifecycle, log)

	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, cfg.Audit.BufferSize, auditRepo, log)
	dispatcher.Start(ctx)
	defer dispatcher.Close()

	throttle := redisdb.NewLoginAttempts(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockoutWindow)

	storeTimeout := service.WithStoreTimeout(cfg.StoreTimeout)
	authService := service.NewAuthService(accountRepo, postRepo, creds, tokens, throttle, dispatcher, log, storeTimeout)
	accountService := service.NewAccountService(accountRepo, postRepo, lifecycle, dispatcher, log, storeTimeout)
	postService := service.NewPostService(postRepo, accountRepo, log, storeTimeout)

	if seedAdmin != "" {
		if err := seed(ctx, authService, seedAdmin); err != nil {
			return err
		}
	}

	e := api.NewRouter(api.Deps{
		Log:      log,
		Gate:     gate,
		Auth:     authService,
		Accounts: accountService,
		Posts:    postService,
		TokenTTL: cfg.Auth.TokenTTL,
		Ready: map[string]handlers.Pinger{
			"mongodb": handlers.PingFunc(func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }),
			"redis":   handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		},
	})

	return serve(ctx, e, ":"+cfg.Port, log)
}

func seed(ctx context.Context, svc *service.AuthService, value string) error {
	email, password, ok := strings.Cut(value, ":")
	if !ok {
		return errors.New("seed-admin: expected email:password")
	}
	if _, err := svc.EnsureAdmin(ctx, email, password); err != nil {
		return fmt.Errorf("seed-admin: %w", err)
	}
	return nil
}

type server interface {
	Start(address string) error
	Shutdown(ctx context.Context) error
}

func serve(ctx context.Context, e server, addr string, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
