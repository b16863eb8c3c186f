package search

import (
	"github.com/urbanform/nearby/internal/geo"
	"github.com/urbanform/nearby/internal/index"
	"github.com/urbanform/nearby/internal/layer"
)

// crossesObstacle decides whether a connecting segment truly crosses any
// obstacle. The segment's endpoints lie on the source/target boundaries by
// construction, so contact at a terminus (within geo.Epsilon) is a touch,
// not a crossing; only interior contact or a one-dimensional overlap counts.
func crossesObstacle(seg geo.Segment, idx *index.RTree, obstacles *layer.Layer) bool {
	for _, id := range idx.Query(seg.Bound()) {
		obstacle, ok := obstacles.ByID(id)
		if !ok {
			continue
		}

		switch res := geo.Intersect(seg, obstacle.Geometry); res.Kind {
		case geo.IntersectionNone:
			continue
		case geo.IntersectionLine, geo.IntersectionMixed:
			// A shared sub-segment, or passage through an interior.
			// Mixed is treated as crossing, conservatively.
			return true
		case geo.IntersectionPoint:
			for _, p := range res.Points {
				if !seg.HasEndpoint(p, geo.Epsilon) {
					return true
				}
			}
		}
	}
	return false
}
