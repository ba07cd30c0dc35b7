package config_test

import (
	"testing"
	"time"

	"github.com/fleetlabs/geofleet/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("VEHICLE_COUNT", "")
	t.Setenv("GEOFENCE_COUNT", "")
	t.Setenv("SEED_BATCH_SIZE", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_MAX_IDLE_CONNS", "")
	t.Setenv("DB_CONN_MAX_LIFETIME", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DB.DSN != config.DefaultDSN {
		t.Errorf("DSN = %q, want default %q", cfg.DB.DSN, config.DefaultDSN)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Seed.VehicleCount != 60000 {
		t.Errorf("VehicleCount = %d, want 60000", cfg.Seed.VehicleCount)
	}
	if cfg.Seed.GeofenceCount != 120000 {
		t.Errorf("GeofenceCount = %d, want 120000", cfg.Seed.GeofenceCount)
	}
	if cfg.Seed.BatchSize != 2000 {
		t.Errorf("BatchSize = %d, want 2000", cfg.Seed.BatchSize)
	}
	if cfg.DB.MaxOpenConns != 20 || cfg.DB.MaxIdleConns != 20 {
		t.Errorf("pool = %d/%d, want 20/20", cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns)
	}
	if cfg.DB.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("ConnMaxLifetime = %v, want 30m", cfg.DB.ConnMaxLifetime)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://demo:demo@db:5432/other")
	t.Setenv("APP_ENV", "production")
	t.Setenv("VEHICLE_COUNT", "100")
	t.Setenv("GEOFENCE_COUNT", "10")
	t.Setenv("SEED_BATCH_SIZE", "50")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DB.DSN != "postgres://demo:demo@db:5432/other" {
		t.Errorf("DSN = %q", cfg.DB.DSN)
	}
	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.Seed.VehicleCount != 100 || cfg.Seed.GeofenceCount != 10 || cfg.Seed.BatchSize != 50 {
		t.Errorf("seed config = %+v", cfg.Seed)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("VEHICLE_COUNT", "-5")
	if _, err := config.Load(); err == nil {
		t.Error("expected error for negative VEHICLE_COUNT")
	}

	t.Setenv("VEHICLE_COUNT", "")
	t.Setenv("SEED_BATCH_SIZE", "-1")
	if _, err := config.Load(); err == nil {
		t.Error("expected error for negative SEED_BATCH_SIZE")
	}
}
