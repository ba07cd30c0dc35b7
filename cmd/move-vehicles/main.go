package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/fleetlabs/geofleet/internal/config"
	"github.com/fleetlabs/geofleet/internal/db"
	"github.com/fleetlabs/geofleet/internal/fleet"
	"github.com/fleetlabs/geofleet/internal/logger"
)

var (
	geofenceID = flag.Int64("geofence-id", 0, "Target geofence id (required)")
	count      = flag.Int("count", 100, "Number of vehicles to move")
)

// Relocates randomly chosen vehicles to random interior points of a geofence,
// for demoing the containment queries.
func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	if *geofenceID == 0 {
		fmt.Fprintln(os.Stderr, "--geofence-id is required.")
		os.Exit(1)
	}

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
	store := fleet.NewStore(database)

	start := time.Now()
	name, moved, err := store.MoveVehiclesIntoGeofence(context.Background(), *geofenceID, *count)
	if err != nil {
		if errors.Is(err, fleet.ErrGeofenceNotFound) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("move failed")
	}

	fmt.Printf("Moved %d vehicles into geofence %d (%s) in %.3fs.\n",
		moved, *geofenceID, name, time.Since(start).Seconds())
}
