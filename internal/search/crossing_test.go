package search

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanform/nearby/internal/geo"
	"github.com/urbanform/nearby/internal/index"
	"github.com/urbanform/nearby/internal/layer"
)

func obstacleFixture(t *testing.T, geoms ...orb.Geometry) (*index.RTree, *layer.Layer) {
	t.Helper()
	l := layer.New("roads")
	for i, g := range geoms {
		require.NoError(t, l.Add(layer.Feature{ID: int64(i + 1), Geometry: g}))
	}
	idx, err := index.Build(l, nil)
	require.NoError(t, err)
	return idx, l
}

func TestCrossesObstacle_InteriorCrossing(t *testing.T) {
	idx, roads := obstacleFixture(t, orb.LineString{{25, -100}, {25, 100}})
	seg := geo.Segment{A: orb.Point{5, 0}, B: orb.Point{45, 0}}

	assert.True(t, crossesObstacle(seg, idx, roads))
}

func TestCrossesObstacle_EndpointTouchIsNotCrossing(t *testing.T) {
	idx, roads := obstacleFixture(t, orb.LineString{{5, -100}, {5, 100}})
	seg := geo.Segment{A: orb.Point{5, 0}, B: orb.Point{45, 0}}

	assert.False(t, crossesObstacle(seg, idx, roads))
}

func TestCrossesObstacle_CollinearOverlapIsCrossing(t *testing.T) {
	idx, roads := obstacleFixture(t, orb.LineString{{10, 0}, {30, 0}})
	seg := geo.Segment{A: orb.Point{5, 0}, B: orb.Point{45, 0}}

	assert.True(t, crossesObstacle(seg, idx, roads))
}

func TestCrossesObstacle_FarObstaclePrunedByBoundingBox(t *testing.T) {
	idx, roads := obstacleFixture(t,
		orb.LineString{{500, -100}, {500, 100}},
		square(0, 500, 10),
	)
	seg := geo.Segment{A: orb.Point{5, 0}, B: orb.Point{45, 0}}

	assert.False(t, crossesObstacle(seg, idx, roads))
}

func TestCrossesObstacle_MultipleObstaclesAnyBlocks(t *testing.T) {
	idx, roads := obstacleFixture(t,
		orb.LineString{{500, -100}, {500, 100}}, // far away
		orb.LineString{{20, -1}, {20, 1}},       // crosses
	)
	seg := geo.Segment{A: orb.Point{5, 0}, B: orb.Point{45, 0}}

	assert.True(t, crossesObstacle(seg, idx, roads))
}

func TestCrossesObstacle_NoObstacles(t *testing.T) {
	idx, roads := obstacleFixture(t)
	seg := geo.Segment{A: orb.Point{5, 0}, B: orb.Point{45, 0}}

	assert.False(t, crossesObstacle(seg, idx, roads))
}
