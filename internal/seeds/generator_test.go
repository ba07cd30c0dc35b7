package seeds_test

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/fleetlabs/geofleet/internal/seeds"
)

func testCorpus(t *testing.T) *seeds.Corpus {
	t.Helper()
	corpus, err := seeds.DefaultCorpus()
	if err != nil {
		t.Fatalf("DefaultCorpus: %v", err)
	}
	return corpus
}

// TestDefaultCorpus verifies the embedded vocabulary parses and carries every
// section the generator draws from.
func TestDefaultCorpus(t *testing.T) {
	corpus := testCorpus(t)

	if len(corpus.Makes) == 0 {
		t.Error("corpus has no makes")
	}
	for mk, models := range corpus.Makes {
		if len(models) == 0 {
			t.Errorf("make %q has no models", mk)
		}
	}
	for name, section := range map[string][]string{
		"colors":      corpus.Colors,
		"fleets":      corpus.Fleets,
		"fence_types": corpus.FenceTypes,
		"tags":        corpus.Tags,
		"cities":      corpus.Cities,
		"adjectives":  corpus.Adjectives,
	} {
		if len(section) == 0 {
			t.Errorf("corpus section %q is empty", name)
		}
	}
}

// TestVIN verifies length, the ISO alphabet (no I, O, Q), and that VINs are
// effectively unique (the keyspace is 33^17; any repeat in a small sample is
// a generator bug).
func TestVIN(t *testing.T) {
	gen := seeds.NewGenerator(testCorpus(t), 1)

	seen := make(map[string]struct{})
	for i := 0; i < 10000; i++ {
		vin := gen.VIN()
		if len(vin) != 17 {
			t.Fatalf("VIN %q has length %d, want 17", vin, len(vin))
		}
		if strings.ContainsAny(vin, "IOQ") {
			t.Fatalf("VIN %q contains a forbidden character", vin)
		}
		if _, dup := seen[vin]; dup {
			t.Fatalf("duplicate VIN %q after %d draws", vin, i)
		}
		seen[vin] = struct{}{}
	}
}

var plateRe = regexp.MustCompile(`^[A-Z]{3}-[0-9]{4}$`)

func TestPlateFormat(t *testing.T) {
	gen := seeds.NewGenerator(testCorpus(t), 2)
	for i := 0; i < 1000; i++ {
		if plate := gen.Plate(); !plateRe.MatchString(plate) {
			t.Fatalf("plate %q does not match AAA-0000", plate)
		}
	}
}

// TestGeneratorDeterminism verifies two generators with the same seed yield
// the same sequence, so re-seeding a wiped database is reproducible.
func TestGeneratorDeterminism(t *testing.T) {
	corpus := testCorpus(t)
	a := seeds.NewGenerator(corpus, 42)
	b := seeds.NewGenerator(corpus, 42)

	for i := 0; i < 100; i++ {
		if av, bv := a.VIN(), b.VIN(); av != bv {
			t.Fatalf("draw %d: VINs diverge: %q vs %q", i, av, bv)
		}
		if aw, bw := a.PolygonWKT(), b.PolygonWKT(); aw != bw {
			t.Fatalf("draw %d: polygons diverge: %q vs %q", i, aw, bw)
		}
	}
}

// parseRing pulls the coordinate pairs out of a POLYGON((...)) string.
func parseRing(t *testing.T, wkt string) [][2]float64 {
	t.Helper()
	body := strings.TrimSuffix(strings.TrimPrefix(wkt, "POLYGON(("), "))")
	if body == wkt {
		t.Fatalf("unexpected WKT shape: %q", wkt)
	}
	var ring [][2]float64
	for _, pair := range strings.Split(body, ", ") {
		fields := strings.Fields(pair)
		if len(fields) != 2 {
			t.Fatalf("bad coordinate pair %q in %q", pair, wkt)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			t.Fatalf("bad x in %q: %v", pair, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			t.Fatalf("bad y in %q: %v", pair, err)
		}
		ring = append(ring, [2]float64{x, y})
	}
	return ring
}

// TestPolygonWKT verifies generated polygons are closed axis-aligned
// rectangles near the continental US, which makes them valid by construction.
func TestPolygonWKT(t *testing.T) {
	gen := seeds.NewGenerator(testCorpus(t), 3)

	for i := 0; i < 1000; i++ {
		wkt := gen.PolygonWKT()
		ring := parseRing(t, wkt)

		if len(ring) != 5 {
			t.Fatalf("ring has %d points, want 5: %q", len(ring), wkt)
		}
		if ring[0] != ring[4] {
			t.Fatalf("ring is not closed: %q", wkt)
		}

		xs := map[float64]struct{}{}
		ys := map[float64]struct{}{}
		for _, p := range ring {
			xs[p[0]] = struct{}{}
			ys[p[1]] = struct{}{}
		}
		if len(xs) != 2 || len(ys) != 2 {
			t.Fatalf("ring is not an axis-aligned rectangle: %q", wkt)
		}

		for _, p := range ring {
			// Corners may overhang the sampling box by up to the max
			// half-side of 0.12 degrees.
			if p[0] < -124.8-0.12 || p[0] > -66.9+0.12 {
				t.Fatalf("x %f out of bounds: %q", p[0], wkt)
			}
			if p[1] < 24.5-0.12 || p[1] > 49.5+0.12 {
				t.Fatalf("y %f out of bounds: %q", p[1], wkt)
			}
		}
	}
}

func TestTagSet(t *testing.T) {
	corpus := testCorpus(t)
	known := make(map[string]struct{}, len(corpus.Tags))
	for _, tag := range corpus.Tags {
		known[tag] = struct{}{}
	}

	gen := seeds.NewGenerator(corpus, 4)
	for i := 0; i < 500; i++ {
		tags := gen.TagSet()
		if len(tags) < 1 || len(tags) > 3 {
			t.Fatalf("tag set has %d entries, want 1-3: %v", len(tags), tags)
		}
		seen := map[string]struct{}{}
		for _, tag := range tags {
			if _, ok := known[tag]; !ok {
				t.Fatalf("tag %q not in corpus", tag)
			}
			if _, dup := seen[tag]; dup {
				t.Fatalf("duplicate tag %q in %v", tag, tags)
			}
			seen[tag] = struct{}{}
		}
	}
}

func TestVehicleMetadata(t *testing.T) {
	gen := seeds.NewGenerator(testCorpus(t), 5)
	meta := gen.VehicleMetadata("Toyota", "Camry", "batch-1")

	for _, key := range []string{"fleet", "status", "fuel", "trim", "odometer_km", "vin_source", "make", "model", "seed_batch"} {
		if _, ok := meta[key]; !ok {
			t.Errorf("vehicle metadata missing %q", key)
		}
	}
	if meta["make"] != "Toyota" || meta["model"] != "Camry" {
		t.Errorf("metadata make/model = %v/%v, want Toyota/Camry", meta["make"], meta["model"])
	}
	if meta["seed_batch"] != "batch-1" {
		t.Errorf("metadata seed_batch = %v, want batch-1", meta["seed_batch"])
	}
}

func TestGeofenceMetadata(t *testing.T) {
	gen := seeds.NewGenerator(testCorpus(t), 6)
	meta := gen.GeofenceMetadata("depot", "batch-2")

	for _, key := range []string{"speed_limit_kph", "access", "priority", "timezone", "notes", "fence_type", "seed_batch"} {
		if _, ok := meta[key]; !ok {
			t.Errorf("geofence metadata missing %q", key)
		}
	}
	if meta["fence_type"] != "depot" {
		t.Errorf("metadata fence_type = %v, want depot", meta["fence_type"])
	}
}
