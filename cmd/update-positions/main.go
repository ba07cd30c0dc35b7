package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fleetlabs/geofleet/internal/config"
	"github.com/fleetlabs/geofleet/internal/db"
	"github.com/fleetlabs/geofleet/internal/fleet"
	"github.com/fleetlabs/geofleet/internal/logger"
)

var (
	loop     = flag.Bool("loop", false, "Run continuously")
	interval = flag.Int("interval", 300, "Seconds between cycles when looping")
)

// Moves every vehicle slightly and appends the new positions to history.
// Each cycle is one committed statement, so Ctrl-C between cycles never
// leaves a cycle half-applied.
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
		updated, err := store.UpdatePositions(ctx)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				log.Info().Msg("interrupted, exiting")
				return
			}
			log.Fatal().Err(err).Msg("update cycle failed")
		}
		fmt.Printf("Updated %d vehicle positions.\n", updated)

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
