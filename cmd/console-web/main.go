package main

import (
	"fmt"
	"os"

	"github.com/edvin/backupdesk/internal/config"
	"github.com/edvin/backupdesk/internal/logging"
	"github.com/edvin/backupdesk/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "console-web"
	}

	logger := logging.NewLogger(cfg)

	if err := cfg.Validate("console-web"); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	srv, err := web.NewServer(logger, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize server")
	}

	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
