package main

import (
	"fmt"
	"os"

	"github.com/devhive-app/devhive/internal/config"
	"github.com/devhive-app/devhive/internal/logger"
	"github.com/devhive-app/devhive/internal/server"
)

var version = "dev" // Will be set during build with -ldflags

func main() {
	// Load configuration; a missing signing secret fails here, before we serve
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.GetLogger()

	// Create server
	srv, err := server.New(cfg, log, version)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	log.Info().Str("version", version).Msg("Starting DevHive identity server...")

	// Start HTTP server (this blocks)
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}
