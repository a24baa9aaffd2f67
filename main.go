package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stenstromen/bioportal/api"
	"github.com/stenstromen/bioportal/config"
	"github.com/stenstromen/bioportal/db"
	"github.com/stenstromen/bioportal/ratelimit"
	"github.com/stenstromen/bioportal/secret"
	"github.com/stenstromen/bioportal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("err", err.Error()))
		os.Exit(1)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	log := slog.New(logHandler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sealer, err := secret.NewFromHex(cfg.EncryptionKey)
	if err != nil {
		log.Error("invalid ENCRYPTION_KEY", slog.String("err", err.Error()))
		os.Exit(1)
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("database unavailable", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	limiter, err := newLimiter(ctx, cfg, log)
	if err != nil {
		log.Error("rate limiter unavailable", slog.String("err", err.Error()))
		os.Exit(1)
	}

	up := upstream.New(cfg.TargetAPIURL)
	if up.Mock() {
		log.Info("TARGET_API_URL not set, bio updates run in mock mode")
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: api.Handlers(api.Config{
			Store:      store,
			Sealer:     sealer,
			Upstream:   up,
			SessionKey: []byte(cfg.SessionSecretKey),
			Limiter:    limiter,
			LogHandler: logHandler,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info("server listening", slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (api.Store, func(), error) {
	if cfg.MySQLDSN == "" {
		log.Warn("MYSQL_DSN not set, tokens are kept in memory only")
		return db.NewMemory(), func() {}, nil
	}

	d, err := db.New(cfg.MySQLDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := d.InitializeDB(ctx); err != nil {
		d.Close()
		return nil, nil, err
	}
	return d, func() { d.Close() }, nil
}

func newLimiter(ctx context.Context, cfg config.Config, log *slog.Logger) (ratelimit.Limiter, error) {
	if cfg.RateLimitPerMinute == 0 {
		log.Info("rate limiting disabled")
		return nil, nil
	}
	if cfg.RedisAddr == "" {
		return ratelimit.NewMemory(cfg.RateLimitPerMinute), nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	limiter, err := ratelimit.NewRedis(ratelimit.RedisConfig{
		Client:    client,
		PerMinute: cfg.RateLimitPerMinute,
	})
	if err != nil {
		return nil, err
	}
	log.Info("rate limiting via redis", slog.String("addr", cfg.RedisAddr))
	return limiter, nil
}
