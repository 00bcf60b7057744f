package main

import (
	"context"
	"time"

	"github.com/arivald8/notehub/internal/config"
	"github.com/arivald8/notehub/internal/database"
	"github.com/arivald8/notehub/internal/queue"
	"github.com/arivald8/notehub/internal/router"
	"github.com/arivald8/notehub/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("migrations failed")
	}
	cancel()

	// Sessions live in redis; the service cannot authenticate without it.
	rdb, err := config.NewRedisClient()
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	// The audit trail is best-effort: without a broker URL the consumer is
	// not started and the publisher stays nil.
	if cfg.AMQPURL != "" {
		go queue.StartAuditConsumer(cfg.AMQPURL)
	}

	e := router.New(cfg, db, rdb)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
