// Package geo is the geometry kernel: bounding boxes, shape-to-shape
// distance, shortest connecting segments, and segment/shape intersection
// classification over orb geometries. All operations are pure functions of
// the input coordinates.
package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/urbanform/nearby/internal/errors"
)

// Epsilon is the endpoint-coincidence tolerance in map units. A connecting
// segment's endpoints lie on the source/target boundaries by construction, so
// an intersection point within Epsilon of an endpoint is a touch, not a
// crossing. Fixed design constant, chosen for meter-scale projected
// coordinates; not user-configurable.
const Epsilon = 1e-4

// tiny is the numeric degeneracy threshold for parallelism and zero-length
// checks. Unrelated to Epsilon, which is a semantic tolerance.
const tiny = 1e-12

// Segment is the minimal connecting geometry between two shapes: exactly two
// endpoint coordinates.
type Segment struct {
	A, B orb.Point
}

// Bound returns the axis-aligned bounding box of the segment.
func (s Segment) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{math.Min(s.A[0], s.B[0]), math.Min(s.A[1], s.B[1])},
		Max: orb.Point{math.Max(s.A[0], s.B[0]), math.Max(s.A[1], s.B[1])},
	}
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return math.Hypot(s.B[0]-s.A[0], s.B[1]-s.A[1])
}

// HasEndpoint reports whether p coincides with either endpoint within tol on
// both axes.
func (s Segment) HasEndpoint(p orb.Point, tol float64) bool {
	return pointsCoincide(p, s.A, tol) || pointsCoincide(p, s.B, tol)
}

func pointsCoincide(p, q orb.Point, tol float64) bool {
	return math.Abs(p[0]-q[0]) < tol && math.Abs(p[1]-q[1]) < tol
}

// Validate checks structural invariants: a polygon ring is closed with at
// least 4 coordinates (including closure) and at least 3 distinct ones; a
// line path has at least 2 coordinates. Violations yield a MalformedGeometry
// error instead of silent NaN/zero results downstream.
func Validate(g orb.Geometry) error {
	switch t := g.(type) {
	case nil:
		return errors.MalformedGeometry("nil geometry")
	case orb.Point:
		return nil
	case orb.MultiPoint:
		if len(t) == 0 {
			return errors.MalformedGeometry("empty multipoint")
		}
		return nil
	case orb.LineString:
		if len(t) < 2 {
			return errors.MalformedGeometry(
				fmt.Sprintf("line path has %d coordinates, need at least 2", len(t)))
		}
		return nil
	case orb.MultiLineString:
		if len(t) == 0 {
			return errors.MalformedGeometry("empty multilinestring")
		}
		for _, ls := range t {
			if err := Validate(ls); err != nil {
				return err
			}
		}
		return nil
	case orb.Ring:
		return validateRing(t)
	case orb.Polygon:
		if len(t) == 0 {
			return errors.MalformedGeometry("polygon has no rings")
		}
		for _, r := range t {
			if err := validateRing(r); err != nil {
				return err
			}
		}
		return nil
	case orb.MultiPolygon:
		if len(t) == 0 {
			return errors.MalformedGeometry("empty multipolygon")
		}
		for _, p := range t {
			if err := Validate(p); err != nil {
				return err
			}
		}
		return nil
	case orb.Collection:
		if len(t) == 0 {
			return errors.MalformedGeometry("empty geometry collection")
		}
		for _, g := range t {
			if err := Validate(g); err != nil {
				return err
			}
		}
		return nil
	case orb.Bound:
		if t.Min[0] > t.Max[0] || t.Min[1] > t.Max[1] {
			return errors.MalformedGeometry("inverted bound")
		}
		return nil
	default:
		return errors.MalformedGeometry(fmt.Sprintf("unsupported geometry type %T", g))
	}
}

func validateRing(r orb.Ring) error {
	if len(r) < 4 {
		return errors.MalformedGeometry(
			fmt.Sprintf("ring has %d coordinates, need at least 4 including closure", len(r)))
	}
	if !r.Closed() {
		return errors.MalformedGeometry("ring is not closed")
	}
	// Closure repeats the first coordinate; a real ring has >= 3 distinct
	// vertices among the rest. Catches coincident-only-point "polygons".
	if countDistinct(r) < 3 {
		return errors.MalformedGeometry("ring degenerates to fewer than 3 distinct coordinates")
	}
	return nil
}

func countDistinct(r orb.Ring) int {
	n := 0
	for i := 0; i < len(r)-1; i++ {
		dup := false
		for j := 0; j < i; j++ {
			if pointsCoincide(r[i], r[j], tiny) {
				dup = true
				break
			}
		}
		if !dup {
			n++
		}
	}
	return n
}

// BoundOf validates the geometry and returns its axis-aligned bounding box.
func BoundOf(g orb.Geometry) (orb.Bound, error) {
	if err := Validate(g); err != nil {
		return orb.Bound{}, err
	}
	return g.Bound(), nil
}

// Expand grows a bound by margin in every direction, for radius-bounded
// candidate queries.
func Expand(b orb.Bound, margin float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.Min[0] - margin, b.Min[1] - margin},
		Max: orb.Point{b.Max[0] + margin, b.Max[1] + margin},
	}
}
