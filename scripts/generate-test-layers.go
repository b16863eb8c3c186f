//go:build ignore

// Package main generates synthetic GeoJSON layers for benchmarking nearby.
// Usage: go run scripts/generate-test-layers.go -buildings 2000 -output testdata/bench
//
// It lays buildings out on a jittered grid and threads a road network
// between the rows and columns, so a realistic share of nearest-neighbor
// segments is blocked.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var (
	numBuildings = flag.Int("buildings", 2000, "Number of buildings to generate")
	spacing      = flag.Float64("spacing", 50, "Grid spacing in map units")
	size         = flag.Float64("size", 12, "Building footprint edge length")
	roadEvery    = flag.Int("road-every", 3, "Place a road after every N grid lines")
	outputDir    = flag.String("output", "testdata/bench", "Output directory")
	seed         = flag.Int64("seed", 42, "Random seed for reproducibility")
)

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	side := gridSide(*numBuildings)

	buildings := geojson.NewFeatureCollection()
	id := 0
	for row := 0; row < side && id < *numBuildings; row++ {
		for col := 0; col < side && id < *numBuildings; col++ {
			x := float64(col)**spacing + jitter(rng, *spacing-*size)
			y := float64(row)**spacing + jitter(rng, *spacing-*size)
			f := geojson.NewFeature(footprint(x, y, *size))
			f.ID = id
			f.Properties["name"] = fmt.Sprintf("building-%d", id)
			buildings.Append(f)
			id++
		}
	}

	extent := float64(side) * *spacing
	roads := geojson.NewFeatureCollection()
	roadID := 0
	for line := *roadEvery; line < side; line += *roadEvery {
		at := float64(line)**spacing - *spacing/2
		v := geojson.NewFeature(orb.LineString{{at, -*spacing}, {at, extent}})
		v.ID = roadID
		v.Properties["highway"] = "residential"
		roads.Append(v)
		roadID++

		h := geojson.NewFeature(orb.LineString{{-*spacing, at}, {extent, at}})
		h.ID = roadID
		h.Properties["highway"] = "residential"
		roads.Append(h)
		roadID++
	}

	if err := writeCollection(buildings, filepath.Join(*outputDir, "buildings.geojson")); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing buildings: %v\n", err)
		os.Exit(1)
	}
	if err := writeCollection(roads, filepath.Join(*outputDir, "roads.geojson")); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing roads: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d buildings and %d roads in %s\n", id, roadID, *outputDir)
}

// gridSide returns the smallest square grid side that fits n cells.
func gridSide(n int) int {
	side := 1
	for side*side < n {
		side++
	}
	return side
}

func jitter(rng *rand.Rand, slack float64) float64 {
	if slack <= 0 {
		return 0
	}
	return rng.Float64() * slack
}

func footprint(x, y, size float64) orb.Polygon {
	return orb.Polygon{{
		{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y},
	}}
}

func writeCollection(fc *geojson.FeatureCollection, path string) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
