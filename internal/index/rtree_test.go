package index

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanform/nearby/internal/geo"
	"github.com/urbanform/nearby/internal/layer"
)

func square(cx, cy, side float64) orb.Polygon {
	h := side / 2
	return orb.Polygon{orb.Ring{
		{cx - h, cy - h},
		{cx + h, cy - h},
		{cx + h, cy + h},
		{cx - h, cy + h},
		{cx - h, cy - h},
	}}
}

func buildLayer(t *testing.T, feats map[int64]orb.Geometry) *layer.Layer {
	t.Helper()
	l := layer.New("test")
	for id, g := range feats {
		require.NoError(t, l.Add(layer.Feature{ID: id, Geometry: g}))
	}
	return l
}

func TestBuild_AndQuery(t *testing.T) {
	l := buildLayer(t, map[int64]orb.Geometry{
		1: square(0, 0, 10),
		2: square(50, 0, 10),
		3: square(200, 200, 10),
	})

	idx, err := Build(l, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Size())
	assert.Empty(t, idx.Skipped())

	// A box around the origin reaches only feature 1.
	ids := idx.Query(orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}})
	assert.ElementsMatch(t, []int64{1}, ids)

	// Expanding by 50 in every direction also reaches feature 2.
	ids = idx.Query(geo.Expand(square(0, 0, 10).Bound(), 50))
	assert.ElementsMatch(t, []int64{1, 2}, ids)

	// A far-away box reaches nothing.
	ids = idx.Query(orb.Bound{Min: orb.Point{1000, 1000}, Max: orb.Point{1001, 1001}})
	assert.Empty(t, ids)
}

func TestBuild_SkipsMalformedGeometry(t *testing.T) {
	l := layer.New("obstacles")
	require.NoError(t, l.Add(layer.Feature{ID: 1, Geometry: square(0, 0, 10)}))
	require.NoError(t, l.Add(layer.Feature{ID: 2, Geometry: orb.Polygon{}})) // malformed
	require.NoError(t, l.Add(layer.Feature{ID: 3, Geometry: square(5, 5, 10)}))

	idx, err := Build(l, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Size())
	assert.Equal(t, []int64{2}, idx.Skipped())
}

func TestQuery_DegenerateBoxesIndexable(t *testing.T) {
	// Lines and points have zero-extent bounds on some axis.
	l := buildLayer(t, map[int64]orb.Geometry{
		1: orb.LineString{{25, -100}, {25, 100}},
		2: orb.Point{7, 7},
	})

	idx, err := Build(l, nil)
	require.NoError(t, err)

	ids := idx.Query(orb.Bound{Min: orb.Point{20, -1}, Max: orb.Point{30, 1}})
	assert.ElementsMatch(t, []int64{1}, ids)

	ids = idx.Query(orb.Bound{Min: orb.Point{6, 6}, Max: orb.Point{8, 8}})
	assert.ElementsMatch(t, []int64{2}, ids)
}

func TestQuery_BoxIntersectionIncludesTouching(t *testing.T) {
	l := buildLayer(t, map[int64]orb.Geometry{
		1: square(0, 0, 10),
	})
	idx, err := Build(l, nil)
	require.NoError(t, err)

	// Query box sharing only the edge x=5 still intersects.
	ids := idx.Query(orb.Bound{Min: orb.Point{5, -1}, Max: orb.Point{6, 1}})
	assert.ElementsMatch(t, []int64{1}, ids)
}
