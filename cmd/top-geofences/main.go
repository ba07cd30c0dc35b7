package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fleetlabs/geofleet/internal/config"
	"github.com/fleetlabs/geofleet/internal/db"
	"github.com/fleetlabs/geofleet/internal/fleet"
	"github.com/fleetlabs/geofleet/internal/logger"
)

var (
	top      = flag.Int("top", 1, "How many top geofences to return")
	sample   = flag.Int("sample", 10, "Sample vehicles to show per geofence (0 disables)")
	loop     = flag.Bool("loop", false, "Run continuously")
	interval = flag.Int("interval", 300, "Seconds between runs when looping")
)

// Ranks geofences by the number of vehicles currently inside them.
func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		start := time.Now()
		ranks, err := store.TopGeofences(ctx, *top, *sample)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				log.Info().Msg("interrupted, exiting")
				return
			}
			log.Fatal().Err(err).Msg("ranking query failed")
		}
		printRanks(ranks, time.Since(start))

		if !*loop {
			return
		}
		select {
		case <-ctx.Done():
			log.Info().Msg("interrupted, exiting")
			return
		case <-time.After(time.Duration(*interval) * time.Second):
		}
	}
}

func printRanks(ranks []fleet.GeofenceRank, elapsed time.Duration) {
	if len(ranks) == 0 {
		fmt.Println("No geofences found.")
		return
	}
	fmt.Printf("Query time: %.3fs\n", elapsed.Seconds())
	for _, r := range ranks {
		fmt.Printf("Geofence %d | name=%s | type=%s | vehicles=%d | tags=[%s]\n",
			r.ID, r.Name, r.FenceType, r.VehicleCount, strings.Join(r.Tags, ", "))
		if len(r.Vehicles) == 0 {
			fmt.Println("  No vehicles currently inside.")
			continue
		}
		fmt.Println("  Sample vehicles (id | vin | plate | lat | lon):")
		for _, v := range r.Vehicles {
			fmt.Printf("    %d | %s | %s | %.5f | %.5f\n",
				v.VehicleID, v.VIN, v.LicensePlate, v.Latitude, v.Longitude)
		}
	}
}
