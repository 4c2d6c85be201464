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

	"go.uber.org/zap"

	"scholarhub/internal/assistant"
	"scholarhub/internal/cache"
	"scholarhub/internal/config"
	"scholarhub/internal/dataset"
	"scholarhub/internal/db"
	"scholarhub/internal/handlers"
	"scholarhub/internal/logging"
	"scholarhub/internal/router"
	"scholarhub/internal/store"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		fmt.Fprintln(os.Stderr, "error loading .env:", err)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	data := dataset.LoadAll(log, cfg.DomesticDataset, cfg.InternationalDataset)

	accounts, contacts, closeStore, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var replies cache.Cache = cache.Nop{}
	if cfg.RedisAddr != "" {
		rc := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "scholarhub:assistant:")
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn("redis unreachable, assistant replies will not be cached", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()
		replies = rc
		defer rc.Close()
	}

	// gen stays an untyped nil interface when no key is configured.
	var gen assistant.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := assistant.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Error("gemini client init failed, assistant disabled", zap.Error(err))
		} else {
			gen = g
			defer g.Close()
		}
	} else {
		log.Warn("GEMINI_API_KEY not set, assistant disabled")
	}

	h := &handlers.Handler{
		Data:     data,
		Accounts: accounts,
		Contacts: contacts,
		Assistant: assistant.New(gen, log, assistant.Options{
			Cache:    replies,
			CacheTTL: cfg.CacheTTL,
			Timeout:  cfg.AssistantTimeout,
		}),
		JWTSecret: []byte(cfg.JWTSecret),
		TokenTTL:  cfg.TokenTTL,
		Log:       log,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.RegisterRouter(h, log, router.Options{CORSOrigins: cfg.CORSOrigins, StaticDir: cfg.StaticDir}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server shutdown complete")
	return nil
}

func openStore(cfg *config.Config, log *zap.Logger) (store.AccountStore, store.ContactStore, func(), error) {
	if cfg.StoreBackend == config.BackendFile {
		fs, err := store.NewFileStore(cfg.UsersFile, cfg.ContactFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("file store: %w", err)
		}
		return fs, fs, func() {}, nil
	}

	dsn := cfg.SQLitePath
	if cfg.StoreBackend == config.BackendPostgres {
		dsn = cfg.PostgresDSN
	}
	conn, err := db.Open(cfg.StoreBackend, dsn)
	if err != nil {
		return nil, nil, nil, err
	}
	gs := store.NewGormStore(conn)
	return gs, gs, func() {
		if err := db.Close(conn); err != nil {
			log.Warn("database close failed", zap.Error(err))
		}
	}, nil
}
