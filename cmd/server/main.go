package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/prospectius/crm-backend/internal/api"
	"github.com/prospectius/crm-backend/internal/core/ports"
	"github.com/prospectius/crm-backend/internal/core/service"
	"github.com/prospectius/crm-backend/internal/infrastructure/config"
	"github.com/prospectius/crm-backend/internal/infrastructure/db/mysql"
	redisdb "github.com/prospectius/crm-backend/internal/infrastructure/db/redis"
	"github.com/prospectius/crm-backend/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// MySQL is a hard dependency: refuse to start without it.
	pool, err := mysql.Connect(ctx, mysql.Config{
		Host:        cfg.Database.Host,
		Port:        cfg.Database.Port,
		User:        cfg.Database.User,
		Password:    cfg.Database.Password,
		Database:    cfg.Database.Name,
		MaxRetries:  cfg.Database.MaxRetries,
		MaxPoolSize: cfg.Database.MaxPoolSize,
		Backoff:     cfg.Database.Backoff,
	}, logger.Component("mysql"))
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	// Redis only backs the login throttle; start degraded without it.
	var rdb *goredis.Client
	var throttle ports.LoginThrottle = service.NoopThrottle{}
	if cfg.Redis.Enabled {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, login throttle disabled")
			rdb = nil
		} else {
			throttle = redisdb.NewLoginThrottle(rdb, 0, 0)
		}
	}

	e := api.NewRouter(cfg, pool, rdb, throttle, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := pool.Shutdown(); err != nil {
		log.Error().Err(err).Msg("pool shutdown")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis shutdown")
		}
	}

	log.Info().Msg("server stopped")
}
