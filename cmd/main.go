package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-cz/devslog"
	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/config"
	"github.com/siahsang/conduit/internal/core"
	"github.com/siahsang/conduit/internal/data"
	"github.com/siahsang/conduit/internal/database"
	"github.com/siahsang/conduit/internal/ratelimit"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type application struct {
	config  config.Config
	logger  *slog.Logger
	core    *core.Core
	auth    *auth.Auth
	limiter *ratelimit.Limiter
	db      pinger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err.Error())
		os.Exit(1)
	}

	logger := configLogger(cfg.Log)
	logger.Info("Starting application...", "env", cfg.Env)

	db, err := database.Open(cfg.DB, logger)
	if err != nil {
		logger.Error("Errors opening database connection", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Errors closing database connection", "error", err.Error())
		}
	}()

	if cfg.DB.MigrateOnStart {
		if err := db.RunMigrations(); err != nil {
			logger.Error("Errors running migrations", "error", err.Error())
			os.Exit(1)
		}
	}

	sqlTemplate := databaseutils.NewSQLTemplate(db.DB, cfg.DB.QueryTimeout)
	models := data.NewModels(sqlTemplate, logger)

	app := &application{
		config:  cfg,
		logger:  logger,
		core:    core.NewCore(logger, models.Stores(), databaseutils.NewSession(db.DB, logger)),
		auth:    auth.New(cfg.JWT.Secret, cfg.JWT.TTL),
		limiter: newLimiter(cfg.RateLimit, logger),
		db:      db,
	}

	if err := app.serve(); err != nil {
		logger.Error("Errors running server", "error", err.Error())
		os.Exit(1)
	}
}

func configLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}

	handler := devslog.NewHandler(
		os.Stdout, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			NewLineAfterLog: false,
		})

	return slog.New(handler)
}

// newLimiter returns nil when rate limiting is switched off.
func newLimiter(cfg config.RateLimitConfig, logger *slog.Logger) *ratelimit.Limiter {
	if cfg.PerMinute <= 0 {
		return nil
	}

	var counter ratelimit.Counter = ratelimit.NewMemoryCounter()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, counting requests in memory", "redis_addr", cfg.RedisAddr, "error", err.Error())
		} else {
			counter = ratelimit.NewRedisCounter(client, "conduit")
		}
	}

	logger.Info("Rate limiting enabled", "per_minute", cfg.PerMinute)
	return ratelimit.NewLimiter(counter, cfg.PerMinute, time.Minute, logger)
}
