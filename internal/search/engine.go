package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/urbanform/nearby/internal/errors"
	"github.com/urbanform/nearby/internal/geo"
	"github.com/urbanform/nearby/internal/index"
	"github.com/urbanform/nearby/internal/layer"
)

// Engine orchestrates candidate retrieval, pruning, shortest-segment
// construction, crossing rejection, and best-candidate tracking. Indexes are
// built once at construction and read-only afterwards, so the source-feature
// loop is data-parallel with no shared mutable state.
type Engine struct {
	candidates *layer.Layer
	obstacles  *layer.Layer
	candIdx    *index.RTree
	obstIdx    *index.RTree

	radius  float64
	workers int
	log     *slog.Logger
}

// NewEngine builds the candidate and obstacle indexes and validates
// parameters. A negative radius or an empty candidate collection fails fast
// before any search work starts. The obstacle layer may be empty.
func NewEngine(candidates, obstacles *layer.Layer, opts ...Option) (*Engine, error) {
	e := &Engine{
		candidates: candidates,
		obstacles:  obstacles,
		radius:     DefaultRadius,
		workers:    0,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = defaultWorkers()
	}

	if e.radius < 0 {
		return nil, errors.InvalidParameter(
			fmt.Sprintf("search radius must be non-negative, got %g", e.radius)).
			WithSuggestion("pass a radius >= 0 in map units")
	}
	if candidates == nil || candidates.Len() == 0 {
		return nil, errors.New(errors.ErrCodeEmptyCollection,
			"candidate collection is empty", nil)
	}
	if obstacles == nil {
		obstacles = layer.New("obstacles")
		e.obstacles = obstacles
	}

	var err error
	if e.candIdx, err = index.Build(candidates, e.log); err != nil {
		return nil, err
	}
	if e.obstIdx, err = index.Build(obstacles, e.log); err != nil {
		return nil, err
	}

	if skipped := e.obstIdx.Skipped(); len(skipped) > 0 {
		e.log.Warn("crossing tests degraded: malformed obstacles excluded",
			"layer", obstacles.Name, "ids", skipped)
	}

	return e, nil
}

// FindNearest computes one NeighborResult per source feature, in source
// order. Cancellation is cooperative and checked between source-feature
// iterations: on cancellation the completed prefix of results is returned
// with Result.Incomplete set, never a half-computed entry.
func (e *Engine) FindNearest(ctx context.Context, sources *layer.Layer) (*Result, error) {
	if sources == nil || sources.Len() == 0 {
		return nil, errors.New(errors.ErrCodeEmptyCollection,
			"source collection is empty", nil)
	}

	feats := sources.Features()
	results := make([]NeighborResult, len(feats))
	done := make([]bool, len(feats))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range feats {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			results[i] = e.nearestFor(&feats[i])
			done[i] = true
			return nil
		})
	}
	_ = g.Wait()

	res := &Result{
		Neighbors:        results,
		SkippedObstacles: e.obstIdx.Skipped(),
	}
	for i := range done {
		if !done[i] {
			res.Neighbors = results[:i]
			res.Incomplete = true
			break
		}
	}
	return res, nil
}

// nearestFor finds the nearest reachable neighbor for a single source
// feature. A malformed source yields the sentinel with a warning, not an
// error; the rest of the batch is unaffected.
func (e *Engine) nearestFor(src *layer.Feature) NeighborResult {
	out := NeighborResult{SourceID: src.ID, NearestID: NoNeighbor, Distance: NoNeighbor}

	bound, err := geo.BoundOf(src.Geometry)
	if err != nil {
		e.log.Warn("skipping source feature with malformed geometry",
			"id", src.ID, "err", err)
		return out
	}

	ids := e.candIdx.Query(geo.Expand(bound, e.radius))
	// Candidate enumeration order is index-internal; sorting makes exact
	// ties resolve to the lowest identifier.
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	best := math.Inf(1)
	bestID := int64(NoNeighbor)

	for _, id := range ids {
		if id == src.ID {
			continue
		}
		cand, ok := e.candidates.ByID(id)
		if !ok {
			continue
		}

		d, err := geo.Distance(src.Geometry, cand.Geometry)
		if err != nil {
			continue // malformed candidates never reach the index
		}
		// Strict improvement required; first-seen wins ties.
		if d > e.radius || d >= best {
			continue
		}

		seg, err := geo.ShortestSegment(src.Geometry, cand.Geometry)
		if err != nil {
			continue
		}
		if crossesObstacle(seg, e.obstIdx, e.obstacles) {
			continue
		}

		best = d
		bestID = id
	}

	if bestID != NoNeighbor {
		out.NearestID = bestID
		out.Distance = best
	}
	return out
}

// Radius returns the configured search radius.
func (e *Engine) Radius() float64 {
	return e.radius
}
