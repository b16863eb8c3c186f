package geo

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// IntersectionKind classifies the shape of a segment/geometry intersection.
type IntersectionKind int

const (
	// IntersectionNone means the shapes do not meet.
	IntersectionNone IntersectionKind = iota
	// IntersectionPoint means one or more isolated contact points.
	IntersectionPoint
	// IntersectionLine means a one-dimensional overlap: a collinear shared
	// sub-segment, or passage through a polygon interior.
	IntersectionLine
	// IntersectionMixed means both isolated points and line overlap occur.
	IntersectionMixed
)

// Intersection is the classified result of intersecting a Segment with a
// geometry. Points carries the isolated contact points for the Point and
// Mixed kinds.
type Intersection struct {
	Kind   IntersectionKind
	Points []orb.Point
}

// paramEps is the tolerance for comparing positions along the query
// segment's parameter space.
const paramEps = 1e-9

// span is a parameter interval along the query segment.
type span struct {
	lo, hi float64
}

// segHits accumulates raw intersection evidence in the query segment's
// parameter space.
type segHits struct {
	pointTs   []float64
	intervals []span
}

func (h *segHits) addPoint(t float64) {
	h.pointTs = append(h.pointTs, clamp01(t))
}

func (h *segHits) addInterval(lo, hi float64) {
	lo, hi = clamp01(lo), clamp01(hi)
	if hi-lo <= paramEps {
		h.addPoint(lo)
		return
	}
	h.intervals = append(h.intervals, span{lo: lo, hi: hi})
}

func (h *segHits) merge(other segHits) {
	h.pointTs = append(h.pointTs, other.pointTs...)
	h.intervals = append(h.intervals, other.intervals...)
}

// Intersect computes the exact intersection of a segment with a geometry and
// classifies the result. For line obstacles the intersection is the set of
// shared points and collinear sub-segments; for polygon obstacles any passage
// through the interior also counts as a line overlap.
func Intersect(s Segment, g orb.Geometry) Intersection {
	hits := collectHits(s, g)
	return classify(s, hits)
}

func collectHits(s Segment, g orb.Geometry) segHits {
	var hits segHits
	switch t := g.(type) {
	case orb.Point:
		q := closestPointOnSegment(t, s)
		if planar.Distance(t, q) <= paramEps {
			hits.addPoint(paramOf(s, q))
		}
	case orb.MultiPoint:
		for _, p := range t {
			hits.merge(collectHits(s, orb.Point(p)))
		}
	case orb.LineString:
		hits.merge(polylineHits(s, t))
	case orb.MultiLineString:
		for _, ls := range t {
			hits.merge(polylineHits(s, ls))
		}
	case orb.Ring:
		hits.merge(polylineHits(s, orb.LineString(t)))
	case orb.Polygon:
		hits.merge(polygonHits(s, t))
	case orb.MultiPolygon:
		for _, p := range t {
			hits.merge(polygonHits(s, p))
		}
	case orb.Collection:
		for _, sub := range t {
			hits.merge(collectHits(s, sub))
		}
	case orb.Bound:
		hits.merge(polygonHits(s, orb.Polygon{t.ToRing()}))
	}
	return hits
}

func polylineHits(s Segment, path []orb.Point) segHits {
	var hits segHits
	for i := 0; i+1 < len(path); i++ {
		hits.merge(intersectSegments(s, Segment{A: path[i], B: path[i+1]}))
	}
	return hits
}

// polygonHits gathers boundary intersections and marks every sub-interval of
// the segment that runs through the polygon interior as a line overlap.
func polygonHits(s Segment, p orb.Polygon) segHits {
	var hits segHits
	for _, r := range p {
		hits.merge(polylineHits(s, r))
	}

	// Cut the segment at every boundary contact and probe the midpoints of
	// the resulting pieces for interior containment.
	cuts := []float64{0, 1}
	cuts = append(cuts, hits.pointTs...)
	for _, iv := range hits.intervals {
		cuts = append(cuts, iv.lo, iv.hi)
	}
	sort.Float64s(cuts)

	for i := 0; i+1 < len(cuts); i++ {
		lo, hi := cuts[i], cuts[i+1]
		if hi-lo <= paramEps {
			continue
		}
		mid := pointAt(s, (lo+hi)/2)
		if planar.PolygonContains(p, mid) {
			hits.intervals = append(hits.intervals, span{lo: lo, hi: hi})
		}
	}
	return hits
}

// classify coalesces raw hits into the final tagged result. Points swallowed
// by a line overlap are not isolated contacts.
func classify(s Segment, hits segHits) Intersection {
	intervals := coalesce(hits.intervals)

	var isolated []float64
	for _, t := range hits.pointTs {
		if !covered(t, intervals) {
			isolated = append(isolated, t)
		}
	}
	isolated = dedupe(isolated)

	points := make([]orb.Point, 0, len(isolated))
	for _, t := range isolated {
		points = append(points, pointAt(s, t))
	}

	switch {
	case len(intervals) == 0 && len(points) == 0:
		return Intersection{Kind: IntersectionNone}
	case len(intervals) == 0:
		return Intersection{Kind: IntersectionPoint, Points: points}
	case len(points) == 0:
		return Intersection{Kind: IntersectionLine}
	default:
		return Intersection{Kind: IntersectionMixed, Points: points}
	}
}

func coalesce(spans []span) []span {
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })
	out := []span{spans[0]}
	for _, sp := range spans[1:] {
		last := &out[len(out)-1]
		if sp.lo <= last.hi+paramEps {
			if sp.hi > last.hi {
				last.hi = sp.hi
			}
			continue
		}
		out = append(out, sp)
	}
	return out
}

func covered(t float64, spans []span) bool {
	for _, sp := range spans {
		if t >= sp.lo-paramEps && t <= sp.hi+paramEps {
			return true
		}
	}
	return false
}

func dedupe(ts []float64) []float64 {
	if len(ts) == 0 {
		return nil
	}
	sort.Float64s(ts)
	out := ts[:1]
	for _, t := range ts[1:] {
		if t-out[len(out)-1] > paramEps {
			out = append(out, t)
		}
	}
	return out
}

// intersectSegments computes the intersection of s1 and s2 in s1's parameter
// space: an isolated point, a collinear overlap interval, or nothing.
func intersectSegments(s1, s2 Segment) segHits {
	var hits segHits

	r := orb.Point{s1.B[0] - s1.A[0], s1.B[1] - s1.A[1]}
	d := orb.Point{s2.B[0] - s2.A[0], s2.B[1] - s2.A[1]}
	qp := orb.Point{s2.A[0] - s1.A[0], s2.A[1] - s1.A[1]}

	rxd := cross(r, d)
	qpxr := cross(qp, r)

	rLen2 := dot(r, r)
	if rLen2 < tiny {
		// Degenerate query segment: point containment test.
		q := closestPointOnSegment(s1.A, s2)
		if planar.Distance(s1.A, q) <= paramEps {
			hits.addPoint(0)
		}
		return hits
	}

	scale := 1 + rLen2 + dot(d, d)
	if math.Abs(rxd) < tiny*scale {
		if math.Abs(qpxr) >= tiny*scale {
			return hits // parallel, never meet
		}
		// Collinear: project s2 onto s1's parameter space.
		t0 := dot(qp, r) / rLen2
		t1 := t0 + dot(d, r)/rLen2
		lo, hi := math.Min(t0, t1), math.Max(t0, t1)
		lo, hi = math.Max(lo, 0), math.Min(hi, 1)
		if lo > hi {
			return hits
		}
		hits.addInterval(lo, hi)
		return hits
	}

	t := cross(qp, d) / rxd
	u := qpxr / rxd
	const slack = 1e-9
	if t >= -slack && t <= 1+slack && u >= -slack && u <= 1+slack {
		hits.addPoint(t)
	}
	return hits
}

// paramOf returns the parameter of p along s, assuming p lies on s.
func paramOf(s Segment, p orb.Point) float64 {
	dx := s.B[0] - s.A[0]
	dy := s.B[1] - s.A[1]
	len2 := dx*dx + dy*dy
	if len2 < tiny {
		return 0
	}
	return clamp01(((p[0]-s.A[0])*dx + (p[1]-s.A[1])*dy) / len2)
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

func cross(a, b orb.Point) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

func dot(a, b orb.Point) float64 {
	return a[0]*b[0] + a[1]*b[1]
}
