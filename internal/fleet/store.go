package fleet

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrGeofenceNotFound is returned when a geofence id or fuzzy name resolves to
// nothing. Callers surface it as a user-facing message rather than a query
// failure.
var ErrGeofenceNotFound = errors.New("geofence not found")

// Store issues the fleet queries against a Postgres/PostGIS database. All
// geometry work happens in SQL; Go only moves parameters and rows.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GeofenceRef identifies a resolved geofence. Score is the trigram similarity
// of the matched name when the geofence was found by fuzzy search, 1 when it
// was found by id.
type GeofenceRef struct {
	ID    int64
	Name  string
	Score float64
}

func (s *Store) GeofenceByID(ctx context.Context, id int64) (GeofenceRef, error) {
	var g Geofence
	err := s.db.WithContext(ctx).Select("id", "name").First(&g, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return GeofenceRef{}, fmt.Errorf("%w: id %d", ErrGeofenceNotFound, id)
	}
	if err != nil {
		return GeofenceRef{}, fmt.Errorf("load geofence %d: %w", id, err)
	}
	return GeofenceRef{ID: g.ID, Name: g.Name, Score: 1}, nil
}

// BestGeofenceByName resolves a fuzzy name to the single most similar
// geofence using the pg_trgm % operator.
func (s *Store) BestGeofenceByName(ctx context.Context, name string) (GeofenceRef, error) {
	refs, err := s.SearchGeofencesByName(ctx, name, 1)
	if err != nil {
		return GeofenceRef{}, err
	}
	if len(refs) == 0 {
		return GeofenceRef{}, fmt.Errorf("%w: no name similar to %q", ErrGeofenceNotFound, name)
	}
	return refs[0], nil
}

func (s *Store) SearchGeofencesByName(ctx context.Context, name string, limit int) ([]GeofenceRef, error) {
	refs := []GeofenceRef{}
	err := s.db.WithContext(ctx).Raw(`
		SELECT id, name, similarity(name, ?) AS score
		FROM geofences
		WHERE name % ?
		ORDER BY score DESC, id ASC
		LIMIT ?`,
		name, name, limit,
	).Scan(&refs).Error
	if err != nil {
		return nil, fmt.Errorf("geofence name search %q: %w", name, err)
	}
	return refs, nil
}

// ContainedVehicle is one vehicle currently inside a geofence.
type ContainedVehicle struct {
	VehicleID    int64
	VIN          string `gorm:"column:vin"`
	LicensePlate string
	Latitude     float64
	Longitude    float64
}

// VehiclesInGeofence returns vehicles whose current position lies within the
// geofence polygon, ordered by vehicle id. An empty slice means nothing is
// inside; the geofence itself must already be resolved.
func (s *Store) VehiclesInGeofence(ctx context.Context, geofenceID int64, limit int) ([]ContainedVehicle, error) {
	vehicles := []ContainedVehicle{}
	err := s.db.WithContext(ctx).Raw(`
		SELECT v.id AS vehicle_id, v.vin, v.license_plate, vp.latitude, vp.longitude
		FROM geofences g
		JOIN vehicle_positions vp ON ST_Contains(g.geom, vp.geom)
		JOIN vehicles v ON v.id = vp.vehicle_id
		WHERE g.id = ?
		ORDER BY v.id
		LIMIT ?`,
		geofenceID, limit,
	).Scan(&vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("containment query for geofence %d: %w", geofenceID, err)
	}
	return vehicles, nil
}

// VehicleMatch is one fuzzy-search hit with its trigram similarity score.
type VehicleMatch struct {
	VehicleID    int64
	VIN          string `gorm:"column:vin"`
	LicensePlate string
	Make         string
	Model        string
	Year         int
	Score        float64
}

func (s *Store) SearchVehiclesByVIN(ctx context.Context, query string, limit int) ([]VehicleMatch, error) {
	return s.searchVehicles(ctx, "vin", query, limit)
}

func (s *Store) SearchVehiclesByPlate(ctx context.Context, query string, limit int) ([]VehicleMatch, error) {
	return s.searchVehicles(ctx, "license_plate", query, limit)
}

func (s *Store) searchVehicles(ctx context.Context, column, query string, limit int) ([]VehicleMatch, error) {
	// column is one of two fixed identifiers, never user input.
	matches := []VehicleMatch{}
	err := s.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT v.id AS vehicle_id,
		       v.vin,
		       v.license_plate,
		       v.make,
		       v.model,
		       v.year,
		       similarity(v.%s, ?) AS score
		FROM vehicles v
		WHERE v.%s %% ?
		ORDER BY score DESC, v.id
		LIMIT ?`, column, column),
		query, query, limit,
	).Scan(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("fuzzy %s search %q: %w", column, query, err)
	}
	return matches, nil
}

// GeofenceRank is one row of the busiest-geofence ranking, optionally carrying
// a sample of the vehicles currently inside.
type GeofenceRank struct {
	ID           int64
	Name         string
	FenceType    string
	Tags         pq.StringArray `gorm:"type:text[]"`
	VehicleCount int64
	Vehicles     []ContainedVehicle `gorm:"-"`
}

// TopGeofences ranks geofences by the number of vehicles currently contained,
// descending, ties broken by id. When sampleLimit > 0 each returned geofence
// also carries up to sampleLimit contained vehicles.
func (s *Store) TopGeofences(ctx context.Context, topN, sampleLimit int) ([]GeofenceRank, error) {
	ranks := []GeofenceRank{}
	err := s.db.WithContext(ctx).Raw(`
		WITH counts AS (
			SELECT g.id, COUNT(vp.vehicle_id) AS vehicle_count
			FROM geofences g
			LEFT JOIN vehicle_positions vp ON ST_Contains(g.geom, vp.geom)
			GROUP BY g.id
		)
		SELECT g.id, g.name, g.fence_type, g.tags, c.vehicle_count
		FROM counts c
		JOIN geofences g ON g.id = c.id
		ORDER BY c.vehicle_count DESC, g.id ASC
		LIMIT ?`,
		topN,
	).Scan(&ranks).Error
	if err != nil {
		return nil, fmt.Errorf("top geofences: %w", err)
	}

	if sampleLimit > 0 {
		for i := range ranks {
			vehicles, err := s.VehiclesInGeofence(ctx, ranks[i].ID, sampleLimit)
			if err != nil {
				return nil, err
			}
			ranks[i].Vehicles = vehicles
		}
	}
	return ranks, nil
}
