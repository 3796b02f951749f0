package main

import (
	"github.com/rs/zerolog/log"

	"delulu-backend/internal/config"
	"delulu-backend/internal/database"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Apply schema
	if err := database.AutoMigrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	log.Info().Msg("Migrations applied")
}
