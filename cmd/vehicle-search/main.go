package main

import (
	"context"
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
	vin   = flag.String("vin", "", "VIN to fuzzy match")
	plate = flag.String("plate", "", "License plate to fuzzy match")
	limit = flag.Int("limit", 10, "Max results to show")
)

// Fuzzy-searches vehicles by partial VIN or license plate using trigram
// similarity.
func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	if (*vin == "") == (*plate == "") {
		fmt.Fprintln(os.Stderr, "You must specify exactly one of --vin or --plate.")
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

	var (
		matches []fleet.VehicleMatch
		label   string
	)
	start := time.Now()
	if *vin != "" {
		matches, err = store.SearchVehiclesByVIN(ctx, *vin, *limit)
		label = fmt.Sprintf("VIN %q", *vin)
	} else {
		matches, err = store.SearchVehiclesByPlate(ctx, *plate, *limit)
		label = fmt.Sprintf("plate %q", *plate)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("fuzzy search failed")
	}
	elapsed := time.Since(start)

	if len(matches) == 0 {
		fmt.Printf("No vehicles matched %s.\n", label)
		return
	}
	fmt.Printf("Matches for %s:\n", label)
	fmt.Println("vehicle_id | vin | license_plate | make | model | year | similarity")
	for _, m := range matches {
		fmt.Printf("%d | %s | %s | %s | %s | %d | %.3f\n",
			m.VehicleID, m.VIN, m.LicensePlate, m.Make, m.Model, m.Year, m.Score)
	}
	fmt.Printf("Query time: %.3fs\n", elapsed.Seconds())
}
