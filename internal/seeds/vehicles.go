package seeds

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/fleetlabs/geofleet/internal/fleet"
)

// initialPosition holds the generated starting state for one vehicle before
// its database id is known.
type initialPosition struct {
	lat     float64
	lon     float64
	heading float64
	speed   float64
}

// SeedVehicles inserts total synthetic vehicles, each with a current position
// and one seed history row, in committed per-batch transactions. VIN and
// plate uniqueness is guaranteed by regenerating on collision against the set
// of keys already in the database plus those issued this run.
func SeedVehicles(ctx context.Context, db *gorm.DB, gen *Generator, total, batchSize int, seedBatch string, log zerolog.Logger) error {
	log.Info().Int("count", total).Msg("creating vehicles with positions and history")

	seenVINs, seenPlates, err := loadExistingVehicleKeys(ctx, db)
	if err != nil {
		return err
	}

	created := 0
	for created < total {
		count := batchSize
		if remaining := total - created; remaining < count {
			count = remaining
		}

		vehicles := make([]*fleet.Vehicle, 0, count)
		positions := make([]initialPosition, 0, count)
		for i := 0; i < count; i++ {
			mk, model := gen.MakeModel()

			vin := uniqueKey(gen.VIN, seenVINs)
			plate := uniqueKey(gen.Plate, seenPlates)

			lat, lon := gen.Point()
			vehicles = append(vehicles, &fleet.Vehicle{
				VIN:          vin,
				LicensePlate: plate,
				Make:         mk,
				Model:        model,
				Year:         gen.Year(),
				Color:        gen.Color(),
				Metadata:     gen.VehicleMetadata(mk, model, seedBatch),
			})
			positions = append(positions, initialPosition{
				lat:     lat,
				lon:     lon,
				heading: gen.Heading(),
				speed:   gen.Speed(),
			})
		}

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&vehicles).Error; err != nil {
				return fmt.Errorf("insert vehicles: %w", err)
			}
			if err := insertPositions(tx, "vehicle_positions", "updated_at", vehicles, positions); err != nil {
				return err
			}
			return insertPositions(tx, "vehicle_position_history", "recorded_at", vehicles, positions)
		})
		if err != nil {
			return fmt.Errorf("vehicle batch at %d: %w", created, err)
		}

		created += count
		if created%10000 == 0 || created == total {
			log.Info().Int("created", created).Int("total", total).Msg("vehicle progress")
		}
	}

	log.Info().Msg("vehicles done")
	return nil
}

// insertPositions bulk-inserts the initial rows for either the current
// position table or the history table; both share the same column shape apart
// from the timestamp name.
func insertPositions(tx *gorm.DB, table, timestampCol string, vehicles []*fleet.Vehicle, positions []initialPosition) error {
	var (
		sb   strings.Builder
		args []interface{}
	)
	fmt.Fprintf(&sb, "INSERT INTO %s (vehicle_id, geom, latitude, longitude, heading_deg, speed_kph, %s) VALUES ", table, timestampCol)
	for i, v := range vehicles {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ST_SetSRID(ST_MakePoint(?, ?), 4326), ?, ?, ?, ?, now())")
		p := positions[i]
		args = append(args, v.ID, p.lon, p.lat, p.lat, p.lon, p.heading, p.speed)
	}
	if err := tx.Exec(sb.String(), args...).Error; err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// uniqueKey draws from generate until the value is not in seen, then records
// and returns it. Collisions are vanishingly rare at demo scale but cheap to
// guard against.
func uniqueKey(generate func() string, seen map[string]struct{}) string {
	key := generate()
	for {
		if _, dup := seen[key]; !dup {
			break
		}
		key = generate()
	}
	seen[key] = struct{}{}
	return key
}

// loadExistingVehicleKeys returns the VINs and plates already present so
// re-running the seeder can never hit the unique constraints.
func loadExistingVehicleKeys(ctx context.Context, db *gorm.DB) (map[string]struct{}, map[string]struct{}, error) {
	var existing []struct {
		VIN          string `gorm:"column:vin"`
		LicensePlate string
	}
	err := db.WithContext(ctx).Model(&fleet.Vehicle{}).Select("vin", "license_plate").Find(&existing).Error
	if err != nil {
		return nil, nil, fmt.Errorf("load existing vehicle keys: %w", err)
	}

	vins := make(map[string]struct{}, len(existing))
	plates := make(map[string]struct{}, len(existing))
	for _, row := range existing {
		vins[row.VIN] = struct{}{}
		plates[row.LicensePlate] = struct{}{}
	}
	return vins, plates, nil
}
