package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Distance returns the minimum Euclidean distance between two shapes, 0 if
// they overlap, touch, or one contains the other. Fails with
// MalformedGeometry on degenerate input.
func Distance(g1, g2 orb.Geometry) (float64, error) {
	seg, err := ShortestSegment(g1, g2)
	if err != nil {
		return 0, err
	}
	return seg.Length(), nil
}

// ShortestSegment returns the pair of closest points, one per shape,
// realizing the minimum distance. When multiple pairs tie, any one realizing
// the minimum is returned; the choice is not semantically significant
// downstream.
func ShortestSegment(g1, g2 orb.Geometry) (Segment, error) {
	if err := Validate(g1); err != nil {
		return Segment{}, err
	}
	if err := Validate(g2); err != nil {
		return Segment{}, err
	}

	// Containment collapses the distance to zero at the contained vertex.
	if p, ok := vertexInside(g1, g2); ok {
		return Segment{A: p, B: p}, nil
	}
	if p, ok := vertexInside(g2, g1); ok {
		return Segment{A: p, B: p}, nil
	}

	e1 := edgesOf(g1)
	e2 := edgesOf(g2)

	best := Segment{}
	bestDist := math.Inf(1)
	for _, a := range e1 {
		for _, b := range e2 {
			p, q, d := closestBetweenSegments(a, b)
			if d < bestDist {
				bestDist = d
				best = Segment{A: p, B: q}
				if d == 0 {
					return best, nil
				}
			}
		}
	}
	return best, nil
}

// edgesOf decomposes a geometry into its constituent segments. Point
// geometries become degenerate segments so the pairwise sweep stays uniform.
func edgesOf(g orb.Geometry) []Segment {
	var out []Segment
	appendPath := func(pts []orb.Point) {
		if len(pts) == 1 {
			out = append(out, Segment{A: pts[0], B: pts[0]})
			return
		}
		for i := 0; i+1 < len(pts); i++ {
			out = append(out, Segment{A: pts[i], B: pts[i+1]})
		}
	}

	switch t := g.(type) {
	case orb.Point:
		appendPath([]orb.Point{t})
	case orb.MultiPoint:
		for _, p := range t {
			appendPath([]orb.Point{p})
		}
	case orb.LineString:
		appendPath(t)
	case orb.MultiLineString:
		for _, ls := range t {
			appendPath(ls)
		}
	case orb.Ring:
		appendPath(t)
	case orb.Polygon:
		for _, r := range t {
			appendPath(r)
		}
	case orb.MultiPolygon:
		for _, p := range t {
			for _, r := range p {
				appendPath(r)
			}
		}
	case orb.Collection:
		for _, g := range t {
			out = append(out, edgesOf(g)...)
		}
	case orb.Bound:
		out = append(out, edgesOf(t.ToRing())...)
	}
	return out
}

// vertexInside reports whether some vertex of g lies strictly inside a
// polygonal container, returning that vertex.
func vertexInside(g orb.Geometry, container orb.Geometry) (orb.Point, bool) {
	var contains func(orb.Point) bool
	switch c := container.(type) {
	case orb.Polygon:
		contains = func(p orb.Point) bool { return planar.PolygonContains(c, p) }
	case orb.MultiPolygon:
		contains = func(p orb.Point) bool { return planar.MultiPolygonContains(c, p) }
	case orb.Ring:
		contains = func(p orb.Point) bool { return planar.RingContains(c, p) }
	default:
		return orb.Point{}, false
	}

	for _, e := range edgesOf(g) {
		if contains(e.A) {
			return e.A, true
		}
	}
	return orb.Point{}, false
}

// closestBetweenSegments returns the closest point pair between two segments
// and their distance. If the segments intersect, the distance is zero and
// both points are the intersection point.
func closestBetweenSegments(s1, s2 Segment) (orb.Point, orb.Point, float64) {
	if p, ok := properIntersection(s1, s2); ok {
		return p, p, 0
	}

	// Non-intersecting segments realize their minimum at an endpoint of one
	// of them against the other.
	type pair struct {
		p, q orb.Point
	}
	best := pair{}
	bestDist := math.Inf(1)

	check := func(p orb.Point, s Segment, flip bool) {
		q := closestPointOnSegment(p, s)
		d := planar.Distance(p, q)
		if d < bestDist {
			bestDist = d
			if flip {
				best = pair{p: q, q: p}
			} else {
				best = pair{p: p, q: q}
			}
		}
	}

	check(s1.A, s2, false)
	check(s1.B, s2, false)
	check(s2.A, s1, true)
	check(s2.B, s1, true)

	return best.p, best.q, bestDist
}

// closestPointOnSegment projects p onto s, clamped to the segment.
func closestPointOnSegment(p orb.Point, s Segment) orb.Point {
	dx := s.B[0] - s.A[0]
	dy := s.B[1] - s.A[1]
	len2 := dx*dx + dy*dy
	if len2 < tiny {
		return s.A
	}
	t := ((p[0]-s.A[0])*dx + (p[1]-s.A[1])*dy) / len2
	t = math.Max(0, math.Min(1, t))
	return orb.Point{s.A[0] + t*dx, s.A[1] + t*dy}
}

// properIntersection reports whether the two segments intersect (including
// touching and collinear overlap) and returns one intersection point.
func properIntersection(s1, s2 Segment) (orb.Point, bool) {
	hits := intersectSegments(s1, s2)
	if len(hits.pointTs) > 0 {
		return pointAt(s1, hits.pointTs[0]), true
	}
	if len(hits.intervals) > 0 {
		return pointAt(s1, hits.intervals[0].lo), true
	}
	return orb.Point{}, false
}

// pointAt returns the point at parameter t along s.
func pointAt(s Segment, t float64) orb.Point {
	return orb.Point{
		s.A[0] + t*(s.B[0]-s.A[0]),
		s.A[1] + t*(s.B[1]-s.A[1]),
	}
}
