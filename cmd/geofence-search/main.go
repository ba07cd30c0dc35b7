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
	geofenceID = flag.Int64("geofence-id", 0, "Geofence id to check")
	name       = flag.String("name", "", "Fuzzy geofence name search (uses pg_trgm)")
	limit      = flag.Int("limit", 20, "Max vehicles to show")
)

// Lists vehicles whose current position lies inside a geofence, found either
// by id or by fuzzy name match.
func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	if *geofenceID == 0 && *name == "" {
		fmt.Fprintln(os.Stderr, "You must specify --geofence-id or --name.")
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
	ctx := context.Background()

	start := time.Now()
	var ref fleet.GeofenceRef
	if *geofenceID != 0 {
		ref, err = store.GeofenceByID(ctx, *geofenceID)
	} else {
		ref, err = store.BestGeofenceByName(ctx, *name)
	}
	if err != nil {
		if errors.Is(err, fleet.ErrGeofenceNotFound) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("geofence lookup failed")
	}

	vehicles, err := store.VehiclesInGeofence(ctx, ref.ID, *limit)
	if err != nil {
		log.Fatal().Err(err).Msg("containment query failed")
	}
	elapsed := time.Since(start)

	if len(vehicles) == 0 {
		fmt.Printf("No vehicles found inside geofence %d (%s).\n", ref.ID, ref.Name)
		return
	}
	fmt.Println("geofence_id | geofence_name | vehicle_id | vin | license_plate | latitude | longitude")
	for _, v := range vehicles {
		fmt.Printf("%d | %s | %d | %s | %s | %.5f | %.5f\n",
			ref.ID, ref.Name, v.VehicleID, v.VIN, v.LicensePlate, v.Latitude, v.Longitude)
	}
	fmt.Printf("Query time: %.3fs\n", elapsed.Seconds())
}
