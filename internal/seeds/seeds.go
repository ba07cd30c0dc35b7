package seeds

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/fleetlabs/geofleet/internal/config"
)

// Fixed generator seeds keep reseeded databases comparable run to run.
const (
	geofenceSeed = 42
	vehicleSeed  = 99
)

// SeedAll populates the database with synthetic geofences and vehicles per the
// configured counts. Every row's metadata carries a shared seed_batch id so a
// run's output can be identified later.
func SeedAll(ctx context.Context, db *gorm.DB, cfg config.SeedConfig, log zerolog.Logger) error {
	corpus, err := DefaultCorpus()
	if err != nil {
		return err
	}

	seedBatch := uuid.NewString()
	log.Info().Str("seed_batch", seedBatch).Msg("seeding")

	if err := SeedGeofences(ctx, db, NewGenerator(corpus, geofenceSeed), cfg.GeofenceCount, cfg.BatchSize, seedBatch, log); err != nil {
		return err
	}
	return SeedVehicles(ctx, db, NewGenerator(corpus, vehicleSeed), cfg.VehicleCount, cfg.BatchSize, seedBatch, log)
}
