package classify

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanform/nearby/internal/errors"
	"github.com/urbanform/nearby/internal/layer"
)

// base is a record that falls all the way through to the compactness rules.
func base() Record {
	return Record{
		Motorway:           false,
		ClosestStreetAngle: 10,
		PrimarySecondary:   false,
		FrontageRatio:      0.3,
		Service:            false,
		Compactness:        0.7,
		Area:               100,
		Corners:            4,
		ERI:                1.0,
	}
}

func TestLandUse_RuleOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
		want   Label
	}{
		{"motorway buffer wins first", func(r *Record) { r.Motorway = true }, NonResidential},
		{"steep street angle", func(r *Record) { r.ClosestStreetAngle = 25 }, Residential},
		{"primary street low frontage", func(r *Record) { r.PrimarySecondary = true; r.FrontageRatio = 0.1 }, NonResidential},
		{"primary street good frontage", func(r *Record) { r.PrimarySecondary = true }, Mixed},
		{"low frontage off primary", func(r *Record) { r.FrontageRatio = 0.1 }, NonResidential},
		{"service buffer", func(r *Record) { r.Service = true }, Mixed},
		{"sprawling large", func(r *Record) { r.Compactness = 0.5; r.Area = 300 }, NonResidential},
		{"sprawling many corners", func(r *Record) { r.Compactness = 0.5; r.Corners = 8 }, NonResidential},
		{"sprawling elongated", func(r *Record) { r.Compactness = 0.5; r.ERI = 0.8 }, NonResidential},
		{"sprawling small simple", func(r *Record) { r.Compactness = 0.5 }, Residential},
		{"compact high frontage complex", func(r *Record) { r.FrontageRatio = 0.6; r.Corners = 8 }, Mixed},
		{"compact high frontage simple", func(r *Record) { r.FrontageRatio = 0.6 }, Residential},
		{"compact low frontage large", func(r *Record) { r.Area = 300 }, NonResidential},
		{"compact low frontage simple", func(r *Record) {}, Residential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base()
			tt.mutate(&r)
			assert.Equal(t, tt.want, LandUse(r))
		})
	}
}

func TestLandUse_MotorwayBeatsEverything(t *testing.T) {
	r := base()
	r.Motorway = true
	r.ClosestStreetAngle = 90 // would otherwise be Residential
	assert.Equal(t, NonResidential, LandUse(r))
}

func classifiable(id int64) layer.Feature {
	attrs := layer.NewAttributes()
	attrs.Set(AttrMotorway, false)
	attrs.Set(AttrClosestAngle, 10.0)
	attrs.Set(AttrPrimarySecondary, false)
	attrs.Set(AttrFrontageRatio, 0.3)
	attrs.Set(AttrService, false)
	attrs.Set(AttrCompactness, 0.7)
	attrs.Set(AttrArea, 100.0)
	attrs.Set(AttrCorners, 4)
	attrs.Set(AttrERI, 1.0)
	return layer.Feature{
		ID:       id,
		Geometry: orb.Polygon{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
		Attrs:    attrs,
	}
}

func TestApply_WritesPrediction(t *testing.T) {
	l := layer.New("buildings")
	require.NoError(t, l.Add(classifiable(1)))
	require.NoError(t, l.Add(classifiable(2)))

	out, err := Apply(l)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())

	for _, f := range out.Features() {
		v, ok := f.Attrs.Get(AttrPrediction)
		require.True(t, ok)
		assert.Equal(t, string(Residential), v)
	}

	// Input layer is untouched.
	src, _ := l.ByID(1)
	_, ok := src.Attrs.Get(AttrPrediction)
	assert.False(t, ok)
}

func TestApply_MissingColumnFailsFast(t *testing.T) {
	f := classifiable(1)
	attrs := layer.NewAttributes()
	for _, n := range f.Attrs.Names() {
		if n == AttrCompactness {
			continue
		}
		v, _ := f.Attrs.Get(n)
		attrs.Set(n, v)
	}
	f.Attrs = attrs

	l := layer.New("buildings")
	require.NoError(t, l.Add(f))

	_, err := Apply(l)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMissingAttribute, errors.GetCode(err))
}

func TestApply_NumericBooleansAccepted(t *testing.T) {
	// GeoJSON columns often carry 0/1 instead of true/false.
	f := classifiable(1)
	f.Attrs.Set(AttrMotorway, 1.0)

	l := layer.New("buildings")
	require.NoError(t, l.Add(f))

	out, err := Apply(l)
	require.NoError(t, err)
	got, _ := out.Features()[0].Attrs.Get(AttrPrediction)
	assert.Equal(t, string(NonResidential), got)
}
