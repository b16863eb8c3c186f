// Package layer holds immutable feature collections: geometric records with
// integer identifiers and ordered attribute mappings. Layers are loaded once
// before a search run and only read afterwards.
package layer

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/urbanform/nearby/internal/errors"
)

// Feature is a single geometric record. Immutable once added to a Layer.
type Feature struct {
	ID       int64
	Geometry orb.Geometry
	Attrs    *Attributes
}

// Layer is an ordered collection of features with identifier lookup.
type Layer struct {
	Name string

	features []Feature
	byID     map[int64]int
}

// New creates an empty layer.
func New(name string) *Layer {
	return &Layer{
		Name: name,
		byID: make(map[int64]int),
	}
}

// Add appends a feature. Identifiers must be unique within the layer.
func (l *Layer) Add(f Feature) error {
	if _, dup := l.byID[f.ID]; dup {
		return errors.New(errors.ErrCodeDuplicateID,
			fmt.Sprintf("layer %q: duplicate feature id %d", l.Name, f.ID), nil)
	}
	if f.Attrs == nil {
		f.Attrs = NewAttributes()
	}
	l.byID[f.ID] = len(l.features)
	l.features = append(l.features, f)
	return nil
}

// Features returns the features in insertion order.
// The returned slice must not be mutated.
func (l *Layer) Features() []Feature {
	return l.features
}

// ByID returns the feature with the given identifier.
func (l *Layer) ByID(id int64) (*Feature, bool) {
	i, ok := l.byID[id]
	if !ok {
		return nil, false
	}
	return &l.features[i], true
}

// Len returns the number of features.
func (l *Layer) Len() int {
	return len(l.features)
}
