package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"

	"github.com/meddesk-dev/meddesk/internal/config"
	"github.com/meddesk-dev/meddesk/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init("meddesk-asynqmon", cfg.Logging.Level, cfg.Logging.Format)
	log := logger.GetLogger()

	h := asynqmon.New(asynqmon.Options{
		RootPath:     "/asynqmon",
		RedisConnOpt: asynq.RedisClientOpt{Addr: cfg.Redis.Address},
	})

	addr := os.Getenv("ASYNQMON_ADDR")
	if addr == "" {
		addr = ":8090"
	}

	log.Info().Str("addr", addr).Str("redis", cfg.Redis.Address).Msg("Starting task dashboard")
	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal().Err(err).Msg("Task dashboard server failed")
	}
}
