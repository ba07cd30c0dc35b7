package seeds

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// VIN alphabet excludes I, O and Q per ISO 3779.
const vinChars = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"

const plateChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Continental US bounding box.
const (
	minLat = 24.5
	maxLat = 49.5
	minLon = -124.8
	maxLon = -66.9
)

// Generator produces synthetic fleet attributes from a corpus. It is seeded
// explicitly so repeated runs produce the same sequence, and is not safe for
// concurrent use.
type Generator struct {
	corpus *Corpus
	rng    *rand.Rand
	makes  []string
}

func NewGenerator(corpus *Corpus, seed int64) *Generator {
	makes := make([]string, 0, len(corpus.Makes))
	for m := range corpus.Makes {
		makes = append(makes, m)
	}
	sort.Strings(makes)
	return &Generator{
		corpus: corpus,
		rng:    rand.New(rand.NewSource(seed)),
		makes:  makes,
	}
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

// VIN returns a 17-character pseudo-VIN. Uniqueness is enforced by the caller
// against the set of already-issued VINs.
func (g *Generator) VIN() string {
	b := make([]byte, 17)
	for i := range b {
		b[i] = vinChars[g.rng.Intn(len(vinChars))]
	}
	return string(b)
}

// Plate returns a license plate in AAA-0000 format.
func (g *Generator) Plate() string {
	b := make([]byte, 8)
	for i := 0; i < 3; i++ {
		b[i] = plateChars[g.rng.Intn(len(plateChars))]
	}
	b[3] = '-'
	for i := 4; i < 8; i++ {
		b[i] = byte('0' + g.rng.Intn(10))
	}
	return string(b)
}

// Point returns a random lat/lon inside the continental US.
func (g *Generator) Point() (lat, lon float64) {
	lat = minLat + g.rng.Float64()*(maxLat-minLat)
	lon = minLon + g.rng.Float64()*(maxLon-minLon)
	return lat, lon
}

// PolygonWKT returns an axis-aligned square in WKT, roughly 1-12 km on a
// side. Squares are closed and never self-intersect, so ST_IsValid always
// holds.
func (g *Generator) PolygonWKT() string {
	lat, lon := g.Point()
	size := 0.01 + g.rng.Float64()*0.11
	return fmt.Sprintf("POLYGON((%[1]f %[3]f, %[2]f %[3]f, %[2]f %[4]f, %[1]f %[4]f, %[1]f %[3]f))",
		lon-size, lon+size, lat-size, lat+size)
}

// MakeModel picks a make and one of its models.
func (g *Generator) MakeModel() (string, string) {
	mk := g.makes[g.rng.Intn(len(g.makes))]
	return mk, g.pick(g.corpus.Makes[mk])
}

func (g *Generator) Year() int {
	current := time.Now().UTC().Year()
	return 2005 + g.rng.Intn(current-2005+1)
}

func (g *Generator) Color() string {
	return g.pick(g.corpus.Colors)
}

func (g *Generator) FenceType() string {
	return g.pick(g.corpus.FenceTypes)
}

// GeofenceName builds names like "North Seattle Zone 1042". The trailing
// ordinal keeps names distinct enough for trigram search demos.
func (g *Generator) GeofenceName(ordinal int) string {
	return fmt.Sprintf("%s %s Zone %d", g.pick(g.corpus.Adjectives), g.pick(g.corpus.Cities), ordinal)
}

// TagSet draws three tags and dedupes, so a geofence carries 1-3 tags.
func (g *Generator) TagSet() []string {
	seen := map[string]struct{}{}
	for i := 0; i < 3; i++ {
		seen[g.pick(g.corpus.Tags)] = struct{}{}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Heading returns a heading in [0, 360) degrees.
func (g *Generator) Heading() float64 {
	return g.rng.Float64() * 360
}

// Speed returns a plausible speed in kph, normally distributed around 60 and
// clamped at 0.
func (g *Generator) Speed() float64 {
	s := g.rng.NormFloat64()*20 + 60
	if s < 0 {
		return 0
	}
	return s
}

func (g *Generator) VehicleMetadata(mk, model, seedBatch string) map[string]interface{} {
	return map[string]interface{}{
		"fleet":       g.pick(g.corpus.Fleets),
		"status":      g.pick([]string{"active", "maintenance", "idle"}),
		"fuel":        g.pick([]string{"gasoline", "diesel", "hybrid", "electric"}),
		"trim":        g.pick([]string{"base", "sport", "luxury", "offroad"}),
		"odometer_km": 1000 + g.rng.Intn(249001),
		"vin_source":  g.pick([]string{"oem", "aftermarket", "telematics"}),
		"make":        mk,
		"model":       model,
		"seed_batch":  seedBatch,
	}
}

func (g *Generator) GeofenceMetadata(fenceType, seedBatch string) map[string]interface{} {
	return map[string]interface{}{
		"speed_limit_kph": []int{25, 35, 45, 55, 65}[g.rng.Intn(5)],
		"access":          g.pick([]string{"public", "private", "staff-only", "customer"}),
		"priority":        g.pick([]string{"critical", "normal", "low"}),
		"timezone":        g.pick([]string{"America/New_York", "America/Chicago", "America/Denver", "America/Los_Angeles"}),
		"notes":           g.pick([]string{"staging", "inbound", "outbound", "mixed", "overnight"}),
		"fence_type":      fenceType,
		"seed_batch":      seedBatch,
	}
}
