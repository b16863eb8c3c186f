package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/urbanform/nearby/internal/config"
	"github.com/urbanform/nearby/internal/layer"
	"github.com/urbanform/nearby/internal/output"
	"github.com/urbanform/nearby/internal/search"
)

// Attribute names written to the output layer. The sentinel -1 marks
// features with no reachable neighbor inside the radius.
const (
	attrNearestID   = "nearest_id"
	attrNearestDist = "nearest_dist"
)

// nearestOptions holds CLI flags for nearest.
type nearestOptions struct {
	obstacles string
	outPath   string
	radius    float64
	workers   int
}

func newNearestCmd() *cobra.Command {
	var opts nearestOptions

	cmd := &cobra.Command{
		Use:   "nearest <buildings.geojson>",
		Short: "Find each building's nearest unobstructed neighbor",
		Long: `Nearest computes, for every feature in the input layer, the nearest
other feature reachable by a straight segment that does not cross the
obstacle layer, within the search radius.

The result is the input layer with two attributes appended: nearest_id
and nearest_dist (-1 when nothing reachable lies within the radius).

Examples:
  nearby nearest buildings.geojson --obstacles roads.geojson -o out.geojson
  nearby nearest buildings.geojson --radius 250
  nearby nearest buildings.geojson --obstacles roads.geojson > out.geojson`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNearest(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.obstacles, "obstacles", "b", "", "Obstacle layer GeoJSON (e.g. roads)")
	cmd.Flags().StringVarP(&opts.outPath, "output", "o", "", "Output GeoJSON path (default: stdout)")
	cmd.Flags().Float64VarP(&opts.radius, "radius", "r", 0, "Search radius in map units (default from config)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Concurrent workers (0 = number of CPUs)")

	return cmd
}

func runNearest(ctx context.Context, cmd *cobra.Command, buildingsPath string, opts nearestOptions) error {
	// Summary goes to stderr so stdout stays valid GeoJSON when piped.
	out := output.New(cmd.ErrOrStderr())

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	defer setupCommandLogging(cfg.Logging.Level)()

	radius := cfg.Search.Radius
	if cmd.Flags().Changed("radius") {
		radius = opts.radius
	}
	workers := cfg.Search.Workers
	if cmd.Flags().Changed("workers") {
		workers = opts.workers
	}

	buildings, err := layer.LoadFile(buildingsPath)
	if err != nil {
		return err
	}

	var obstacles *layer.Layer
	if opts.obstacles != "" {
		if obstacles, err = layer.LoadFile(opts.obstacles); err != nil {
			return err
		}
	}

	slog.Info("nearest_started",
		slog.String("buildings", buildingsPath),
		slog.String("obstacles", opts.obstacles),
		slog.Float64("radius", radius),
		slog.Int("features", buildings.Len()))

	engine, err := search.NewEngine(buildings, obstacles,
		search.WithRadius(radius),
		search.WithWorkers(workers))
	if err != nil {
		return err
	}

	res, err := engine.FindNearest(ctx, buildings)
	if err != nil {
		return err
	}

	if n := len(res.SkippedObstacles); n > 0 {
		out.Warningf("%d malformed obstacle(s) excluded from crossing tests", n)
	}
	if res.Incomplete {
		out.Warningf("cancelled after %d of %d features", len(res.Neighbors), buildings.Len())
	}

	annotated, err := annotateNeighbors(buildings, res)
	if err != nil {
		return err
	}

	matched := 0
	for _, n := range res.Neighbors {
		if n.Found() {
			matched++
		}
	}
	slog.Info("nearest_finished",
		slog.Int("matched", matched),
		slog.Int("computed", len(res.Neighbors)))

	if opts.outPath == "" {
		data, err := layer.WriteGeoJSON(annotated)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}

	if err := layer.SaveFile(annotated, opts.outPath); err != nil {
		return err
	}
	out.Successf("%d/%d features matched within radius %g", matched, len(res.Neighbors), radius)
	out.Dimf("wrote %s", opts.outPath)
	return nil
}

// annotateNeighbors returns a copy of the layer with nearest_id and
// nearest_dist appended. Features past a cancelled prefix keep sentinels.
func annotateNeighbors(l *layer.Layer, res *search.Result) (*layer.Layer, error) {
	out := layer.New(l.Name)
	for i, f := range l.Features() {
		var attrs *layer.Attributes
		if f.Attrs != nil {
			attrs = f.Attrs.Clone()
		} else {
			attrs = layer.NewAttributes()
		}

		nearestID := int64(search.NoNeighbor)
		nearestDist := float64(search.NoNeighbor)
		if i < len(res.Neighbors) && res.Neighbors[i].Found() {
			nearestID = res.Neighbors[i].NearestID
			nearestDist = res.Neighbors[i].Distance
		}
		attrs.Set(attrNearestID, nearestID)
		attrs.Set(attrNearestDist, nearestDist)

		if err := out.Add(layer.Feature{ID: f.ID, Geometry: f.Geometry, Attrs: attrs}); err != nil {
			return nil, err
		}
	}
	return out, nil
}
