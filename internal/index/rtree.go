// Package index provides a bulk-loadable spatial index mapping feature
// identifiers to bounding boxes, backed by an R-tree. Built once per layer
// before search begins; read-only during search.
package index

import (
	"fmt"
	"log/slog"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"github.com/urbanform/nearby/internal/errors"
	"github.com/urbanform/nearby/internal/geo"
	"github.com/urbanform/nearby/internal/layer"
)

// R-tree node fan-out, per the usual 2-D defaults.
const (
	minBranch = 25
	maxBranch = 50
)

// entry pairs a feature identifier with its precomputed bounding rectangle.
type entry struct {
	id   int64
	rect rtreego.Rect
}

// Bounds implements the rtreego.Spatial interface.
func (e *entry) Bounds() rtreego.Rect {
	return e.rect
}

// RTree indexes feature bounding boxes for sublinear range queries. The index
// stores no geometry; exact tests against candidates are the caller's job.
type RTree struct {
	tree    *rtreego.Rtree
	skipped []int64
}

// Build computes each feature's bounding box and bulk-loads the index.
// Features with malformed geometry are skipped with a logged warning and
// recorded in Skipped; the caller must surface the omission, never treat it
// as a proven-safe absence.
func Build(l *layer.Layer, log *slog.Logger) (*RTree, error) {
	if log == nil {
		log = slog.Default()
	}

	var objs []rtreego.Spatial
	var skipped []int64
	for _, f := range l.Features() {
		b, err := geo.BoundOf(f.Geometry)
		if err != nil {
			log.Warn("skipping feature with malformed geometry",
				"layer", l.Name, "id", f.ID, "err", err)
			skipped = append(skipped, f.ID)
			continue
		}
		rect, err := boundToRect(b)
		if err != nil {
			return nil, errors.New(errors.ErrCodeIndexFailed,
				fmt.Sprintf("layer %q: feature %d: %v", l.Name, f.ID, err), err)
		}
		objs = append(objs, &entry{id: f.ID, rect: rect})
	}

	return &RTree{
		tree:    rtreego.NewTree(2, minBranch, maxBranch, objs...),
		skipped: skipped,
	}, nil
}

// Query returns the identifiers of every stored bounding box intersecting b.
// Bounding-box false positives against the true geometry are expected.
func (t *RTree) Query(b orb.Bound) []int64 {
	rect, err := boundToRect(b)
	if err != nil {
		return nil
	}

	hits := t.tree.SearchIntersect(rect)
	ids := make([]int64, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.(*entry).id)
	}
	return ids
}

// Size returns the number of indexed features.
func (t *RTree) Size() int {
	return t.tree.Size()
}

// Skipped returns the identifiers excluded at build time because of
// malformed geometry.
func (t *RTree) Skipped() []int64 {
	return t.skipped
}

// boundToRect converts an orb.Bound to an rtreego.Rect. Degenerate extents
// (points, axis-aligned segments) get a hair of width so the R-tree accepts
// them.
func boundToRect(b orb.Bound) (rtreego.Rect, error) {
	const minExtent = 1e-9
	w := b.Max[0] - b.Min[0]
	h := b.Max[1] - b.Min[1]
	if w < minExtent {
		w = minExtent
	}
	if h < minExtent {
		h = minExtent
	}
	return rtreego.NewRect(
		rtreego.Point{b.Min[0], b.Min[1]},
		[]float64{w, h},
	)
}
