package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersect_NoContact(t *testing.T) {
	seg := Segment{A: orb.Point{0, 0}, B: orb.Point{10, 0}}
	road := orb.LineString{{20, -10}, {20, 10}}

	res := Intersect(seg, road)
	assert.Equal(t, IntersectionNone, res.Kind)
	assert.Empty(t, res.Points)
}

func TestIntersect_InteriorPointContact(t *testing.T) {
	// Road perpendicular to the segment, crossing at (5, 0).
	seg := Segment{A: orb.Point{0, 0}, B: orb.Point{10, 0}}
	road := orb.LineString{{5, -10}, {5, 10}}

	res := Intersect(seg, road)
	require.Equal(t, IntersectionPoint, res.Kind)
	require.Len(t, res.Points, 1)
	assert.InDelta(t, 5.0, res.Points[0][0], 1e-9)
	assert.InDelta(t, 0.0, res.Points[0][1], 1e-9)
}

func TestIntersect_EndpointTouch(t *testing.T) {
	// Road passes exactly through the segment's start point.
	seg := Segment{A: orb.Point{0, 0}, B: orb.Point{10, 0}}
	road := orb.LineString{{0, -10}, {0, 10}}

	res := Intersect(seg, road)
	require.Equal(t, IntersectionPoint, res.Kind)
	require.Len(t, res.Points, 1)
	assert.True(t, seg.HasEndpoint(res.Points[0], Epsilon))
}

func TestIntersect_CollinearOverlapIsLine(t *testing.T) {
	seg := Segment{A: orb.Point{0, 0}, B: orb.Point{10, 0}}
	road := orb.LineString{{4, 0}, {6, 0}}

	res := Intersect(seg, road)
	assert.Equal(t, IntersectionLine, res.Kind)
}

func TestIntersect_CollinearTouchAtSinglePoint(t *testing.T) {
	// Collinear but meeting only at (10, 0): a point, not an overlap.
	seg := Segment{A: orb.Point{0, 0}, B: orb.Point{10, 0}}
	road := orb.LineString{{10, 0}, {20, 0}}

	res := Intersect(seg, road)
	require.Equal(t, IntersectionPoint, res.Kind)
	require.Len(t, res.Points, 1)
	assert.InDelta(t, 10.0, res.Points[0][0], 1e-9)
}

func TestIntersect_ThroughPolygonInteriorIsLine(t *testing.T) {
	seg := Segment{A: orb.Point{-10, 0}, B: orb.Point{10, 0}}
	block := square(0, 0, 4) // spans [-2,2] x [-2,2]

	res := Intersect(seg, block)
	assert.Equal(t, IntersectionLine, res.Kind)
}

func TestIntersect_PolygonVertexGrazeIsPoint(t *testing.T) {
	// Segment along y=2 grazes the square's top edge corner at exactly one
	// point when the square's top is at y=2... use a diamond so only the apex
	// (0, 2) touches the line.
	seg := Segment{A: orb.Point{-10, 2}, B: orb.Point{10, 2}}
	diamond := orb.Polygon{orb.Ring{{0, 2}, {-2, 0}, {0, -2}, {2, 0}, {0, 2}}}

	res := Intersect(seg, diamond)
	require.Equal(t, IntersectionPoint, res.Kind)
	require.Len(t, res.Points, 1)
	assert.InDelta(t, 0.0, res.Points[0][0], 1e-9)
	assert.InDelta(t, 2.0, res.Points[0][1], 1e-9)
}

func TestIntersect_CrossingPolylineTwiceYieldsTwoPoints(t *testing.T) {
	seg := Segment{A: orb.Point{0, 0}, B: orb.Point{10, 0}}
	zigzag := orb.LineString{{3, -5}, {3, 5}, {7, 5}, {7, -5}}

	res := Intersect(seg, zigzag)
	require.Equal(t, IntersectionPoint, res.Kind)
	assert.Len(t, res.Points, 2)
}

func TestIntersect_MixedOverlapAndIsolatedPoint(t *testing.T) {
	// One road piece lies along the segment, another crosses it elsewhere.
	seg := Segment{A: orb.Point{0, 0}, B: orb.Point{10, 0}}
	road := orb.MultiLineString{
		{{1, 0}, {3, 0}},    // collinear overlap
		{{8, -5}, {8, 5}},   // isolated crossing at (8,0)
	}

	res := Intersect(seg, road)
	require.Equal(t, IntersectionMixed, res.Kind)
	require.Len(t, res.Points, 1)
	assert.InDelta(t, 8.0, res.Points[0][0], 1e-9)
}

func TestIntersect_SegmentEndingOnPolygonBoundary(t *testing.T) {
	// Segment terminates exactly on the square's left edge without entering:
	// a touch at the segment terminus.
	seg := Segment{A: orb.Point{-10, 0}, B: orb.Point{-2, 0}}
	block := square(0, 0, 4)

	res := Intersect(seg, block)
	require.Equal(t, IntersectionPoint, res.Kind)
	require.Len(t, res.Points, 1)
	assert.True(t, seg.HasEndpoint(res.Points[0], Epsilon))
}
