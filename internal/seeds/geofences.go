package seeds

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedGeofences inserts total synthetic geofences in committed batches.
// Polygons go through ST_GeomFromText so the database owns the geometry
// parsing; squares from the generator are always valid.
func SeedGeofences(ctx context.Context, db *gorm.DB, gen *Generator, total, batchSize int, seedBatch string, log zerolog.Logger) error {
	log.Info().Int("count", total).Msg("creating geofences")

	created := 0
	for created < total {
		count := batchSize
		if remaining := total - created; remaining < count {
			count = remaining
		}

		var (
			sb   strings.Builder
			args []interface{}
		)
		sb.WriteString("INSERT INTO geofences (name, fence_type, tags, metadata, geom) VALUES ")
		for i := 0; i < count; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(?, ?, ?, ?, ST_GeomFromText(?, 4326))")

			fenceType := gen.FenceType()
			args = append(args,
				gen.GeofenceName(created+i),
				fenceType,
				pq.StringArray(gen.TagSet()),
				datatypes.JSONMap(gen.GeofenceMetadata(fenceType, seedBatch)),
				gen.PolygonWKT(),
			)
		}

		if err := db.WithContext(ctx).Exec(sb.String(), args...).Error; err != nil {
			return fmt.Errorf("insert geofence batch at %d: %w", created, err)
		}

		created += count
		if created%10000 == 0 || created == total {
			log.Info().Int("created", created).Int("total", total).Msg("geofence progress")
		}
	}

	log.Info().Msg("geofences done")
	return nil
}
