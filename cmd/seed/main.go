package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/fleetlabs/geofleet/internal/config"
	"github.com/fleetlabs/geofleet/internal/db"
	"github.com/fleetlabs/geofleet/internal/logger"
	"github.com/fleetlabs/geofleet/internal/seeds"
)

// Seeds the database with synthetic geofences and vehicles. Counts come from
// GEOFENCE_COUNT and VEHICLE_COUNT (defaults 120000 / 60000).
func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := seeds.SeedAll(context.Background(), database, cfg.Seed, log); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
}
