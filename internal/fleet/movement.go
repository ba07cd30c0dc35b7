package fleet

import (
	"context"
	"fmt"
)

// UpdatePositions runs one simulation cycle: every current position is
// translated by a bounded random offset (up to ~250 m per axis in EPSG:3857),
// heading drifts up to ±15° and speed up to ±5 kph (clamped at 0), and the
// RETURNING set feeds the history insert. The whole cycle is a single
// statement, so an interrupt can never leave a position updated without its
// history row.
func (s *Store) UpdatePositions(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Exec(`
		WITH moved AS (
			UPDATE vehicle_positions vp
			SET geom = calc.new_geom,
			    latitude = ST_Y(calc.new_geom),
			    longitude = ST_X(calc.new_geom),
			    heading_deg = mod((vp.heading_deg + ((random() - 0.5) * 30))::numeric, 360::numeric)::double precision,
			    speed_kph = greatest(0, vp.speed_kph + ((random() - 0.5) * 10)),
			    updated_at = now()
			FROM (
				SELECT vehicle_id,
				       ST_Transform(
				           ST_Translate(
				               ST_Transform(geom, 3857),
				               (random() - 0.5) * 500,
				               (random() - 0.5) * 500
				           ),
				           4326
				       ) AS new_geom
				FROM vehicle_positions
			) calc
			WHERE calc.vehicle_id = vp.vehicle_id
			RETURNING vp.vehicle_id, vp.geom, vp.latitude, vp.longitude, vp.heading_deg, vp.speed_kph, vp.updated_at
		)
		INSERT INTO vehicle_position_history (vehicle_id, geom, latitude, longitude, heading_deg, speed_kph, recorded_at)
		SELECT vehicle_id, geom, latitude, longitude, heading_deg, speed_kph, updated_at
		FROM moved`)
	if res.Error != nil {
		return 0, fmt.Errorf("update positions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// MoveVehiclesIntoGeofence relocates up to count randomly chosen vehicles to a
// random interior point of the target geofence, zeroing heading and speed.
// Current rows are updated in place and matching history rows appended in the
// same statement. Returns the geofence name and the number of vehicles moved.
func (s *Store) MoveVehiclesIntoGeofence(ctx context.Context, geofenceID int64, count int) (string, int64, error) {
	ref, err := s.GeofenceByID(ctx, geofenceID)
	if err != nil {
		return "", 0, err
	}

	res := s.db.WithContext(ctx).Exec(`
		WITH geofence AS (
			SELECT geom FROM geofences WHERE id = @geofence_id
		),
		sampled AS (
			SELECT id AS vehicle_id
			FROM vehicles
			ORDER BY random()
			LIMIT @count
		),
		points AS (
			SELECT s.vehicle_id,
			       (SELECT (ST_Dump(ST_GeneratePoints(g.geom, 1))).geom FROM geofence g) AS geom
			FROM sampled s
		),
		updated AS (
			UPDATE vehicle_positions vp
			SET geom = p.geom,
			    latitude = ST_Y(p.geom),
			    longitude = ST_X(p.geom),
			    heading_deg = 0,
			    speed_kph = 0,
			    updated_at = now()
			FROM points p
			WHERE vp.vehicle_id = p.vehicle_id
			RETURNING vp.vehicle_id, vp.geom, vp.latitude, vp.longitude, vp.heading_deg, vp.speed_kph, vp.updated_at
		)
		INSERT INTO vehicle_position_history (vehicle_id, geom, latitude, longitude, heading_deg, speed_kph, recorded_at)
		SELECT vehicle_id, geom, latitude, longitude, heading_deg, speed_kph, updated_at
		FROM updated`,
		map[string]interface{}{"geofence_id": geofenceID, "count": count})
	if res.Error != nil {
		return "", 0, fmt.Errorf("move vehicles into geofence %d: %w", geofenceID, res.Error)
	}
	return ref.Name, res.RowsAffected, nil
}
