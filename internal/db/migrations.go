package db

import (
	"fmt"

	"gorm.io/gorm"
)

// migrationStatements define the fleet schema. Every statement is idempotent
// so the list is safe to re-run on every startup.
var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS postgis;`,
	`CREATE EXTENSION IF NOT EXISTS pg_trgm;`,
	`CREATE EXTENSION IF NOT EXISTS fuzzystrmatch;`,
	`CREATE EXTENSION IF NOT EXISTS unaccent;`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id BIGSERIAL PRIMARY KEY,
		vin TEXT NOT NULL UNIQUE,
		license_plate TEXT NOT NULL UNIQUE,
		make TEXT NOT NULL,
		model TEXT NOT NULL,
		year INT NOT NULL,
		color TEXT NOT NULL,
		metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS vehicle_positions (
		vehicle_id BIGINT PRIMARY KEY REFERENCES vehicles(id) ON DELETE CASCADE,
		geom geometry(Point, 4326) NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		heading_deg DOUBLE PRECISION NOT NULL DEFAULT 0,
		speed_kph DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS vehicle_position_history (
		id BIGSERIAL PRIMARY KEY,
		vehicle_id BIGINT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		geom geometry(Point, 4326) NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		heading_deg DOUBLE PRECISION NOT NULL DEFAULT 0,
		speed_kph DOUBLE PRECISION NOT NULL DEFAULT 0,
		recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS geofences (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		fence_type TEXT NOT NULL,
		geom geometry(Polygon, 4326) NOT NULL,
		tags TEXT[] NOT NULL DEFAULT '{}',
		metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicle_positions_geom ON vehicle_positions USING GIST (geom);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicle_position_history_geom ON vehicle_position_history USING GIST (geom);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicle_position_history_vehicle_recorded ON vehicle_position_history (vehicle_id, recorded_at);`,
	`CREATE INDEX IF NOT EXISTS idx_geofences_geom ON geofences USING GIST (geom);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_vin_trgm ON vehicles USING GIN (vin gin_trgm_ops);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_plate_trgm ON vehicles USING GIN (license_plate gin_trgm_ops);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_metadata ON vehicles USING GIN (metadata jsonb_path_ops);`,
	`CREATE INDEX IF NOT EXISTS idx_geofences_name_trgm ON geofences USING GIN (name gin_trgm_ops);`,
	`CREATE INDEX IF NOT EXISTS idx_geofences_tags ON geofences USING GIN (tags);`,
	`CREATE INDEX IF NOT EXISTS idx_geofences_metadata ON geofences USING GIN (metadata jsonb_path_ops);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
