package main

import (
	stdlog "log"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
	"github.com/JonasLeetTheWay/fyyur-go/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal("Failed to load config:", err)
	}

	log, logFile, err := logger.New(cfg)
	if err != nil {
		stdlog.Fatal("Failed to set up logging:", err)
	}
	defer logFile.Close()

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Seed sample data
	if err := database.SeedData(db, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed data")
	}

	log.Info().Msg("Database migration and seeding completed successfully")
}
