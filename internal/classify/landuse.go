// Package classify labels building footprints by land use from precomputed
// morphological attributes, via explicit ordered rule evaluation. Pure
// functions, no state.
package classify

import (
	"fmt"

	"github.com/urbanform/nearby/internal/errors"
	"github.com/urbanform/nearby/internal/layer"
)

// Label is a land-use classification outcome.
type Label string

const (
	Residential    Label = "Residential"
	NonResidential Label = "Non Residential"
	Mixed          Label = "Mixed"
)

// Record holds the precomputed fields the decision rules read.
type Record struct {
	// Motorway is set when the footprint falls in a motorway buffer.
	Motorway bool
	// ClosestStreetAngle is the angle to the closest street, in degrees.
	ClosestStreetAngle float64
	// PrimarySecondary is set when the closest street is primary/secondary.
	PrimarySecondary bool
	// FrontageRatio is the street-facing share of the perimeter, 0-1.
	FrontageRatio float64
	// Service is set when the footprint falls in a service-road buffer.
	Service bool
	// Compactness is the isoperimetric compactness of the footprint.
	Compactness float64
	// Area is the footprint area in square map units.
	Area float64
	// Corners is the number of footprint corners.
	Corners int
	// ERI is the elongation ratio index.
	ERI float64
}

// LandUse evaluates the decision rules in order and returns the label.
func LandUse(r Record) Label {
	if r.Motorway {
		return NonResidential
	}

	if r.ClosestStreetAngle > 20 {
		return Residential
	}

	if r.PrimarySecondary {
		if r.FrontageRatio < 0.2 {
			return NonResidential
		}
		return Mixed
	}

	if r.FrontageRatio < 0.2 {
		return NonResidential
	}

	if r.Service {
		// FrontageRatio >= 0.2 already holds here.
		return Mixed
	}

	if r.Compactness < 0.62 {
		if r.Area > 200 || r.Corners > 4 || r.ERI < 0.9 {
			return NonResidential
		}
		return Residential
	}

	if r.FrontageRatio > 0.5 {
		if r.Corners > 4 || r.ERI < 0.9 {
			return Mixed
		}
		return Residential
	}

	if r.Area > 200 || r.Corners > 4 || r.ERI < 0.9 {
		return NonResidential
	}
	return Residential
}

// Attribute names expected on input features.
const (
	AttrMotorway         = "Motorway"
	AttrClosestAngle     = "Closest"
	AttrPrimarySecondary = "PrimarySecondary"
	AttrFrontageRatio    = "frontage_ratio"
	AttrService          = "Service"
	AttrCompactness      = "Compactness"
	AttrArea             = "Area"
	AttrCorners          = "Corners"
	AttrERI              = "ERI"
)

// AttrPrediction is the output attribute written by Apply.
const AttrPrediction = "prediction"

var requiredAttrs = []string{
	AttrMotorway, AttrClosestAngle, AttrPrimarySecondary, AttrFrontageRatio,
	AttrService, AttrCompactness, AttrArea, AttrCorners, AttrERI,
}

// Apply classifies every feature of the layer and returns a copy with a
// prediction attribute appended. Missing required columns fail fast.
func Apply(l *layer.Layer) (*layer.Layer, error) {
	for _, f := range l.Features() {
		for _, name := range requiredAttrs {
			if _, ok := f.Attrs.Get(name); !ok {
				return nil, errors.New(errors.ErrCodeMissingAttribute,
					fmt.Sprintf("feature %d: missing required attribute %q", f.ID, name), nil)
			}
		}
	}

	out := layer.New(l.Name)
	for _, f := range l.Features() {
		attrs := f.Attrs.Clone()
		attrs.Set(AttrPrediction, string(LandUse(recordFrom(f.Attrs))))
		if err := out.Add(layer.Feature{ID: f.ID, Geometry: f.Geometry, Attrs: attrs}); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func recordFrom(a *layer.Attributes) Record {
	motorway, _ := a.Bool(AttrMotorway)
	angle, _ := a.Float(AttrClosestAngle)
	primary, _ := a.Bool(AttrPrimarySecondary)
	frontage, _ := a.Float(AttrFrontageRatio)
	service, _ := a.Bool(AttrService)
	compactness, _ := a.Float(AttrCompactness)
	area, _ := a.Float(AttrArea)
	corners, _ := a.Int(AttrCorners)
	eri, _ := a.Float(AttrERI)

	return Record{
		Motorway:           motorway,
		ClosestStreetAngle: angle,
		PrimarySecondary:   primary,
		FrontageRatio:      frontage,
		Service:            service,
		Compactness:        compactness,
		Area:               area,
		Corners:            corners,
		ERI:                eri,
	}
}
