package layer

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/paulmach/orb/geojson"

	"github.com/urbanform/nearby/internal/errors"
)

// ReadGeoJSON decodes a GeoJSON FeatureCollection into a Layer.
// Feature ids are taken from the GeoJSON "id" member when it is numeric;
// otherwise features are numbered by position. GeoJSON properties carry no
// order, so attributes are loaded sorted by name for reproducibility.
func ReadGeoJSON(data []byte, name string) (*Layer, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileCorrupt, err)
	}

	l := New(name)
	for i, f := range fc.Features {
		id := featureID(f, int64(i))

		attrs := NewAttributes()
		keys := make([]string, 0, len(f.Properties))
		for k := range f.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			attrs.Set(k, f.Properties[k])
		}

		if err := l.Add(Feature{ID: id, Geometry: f.Geometry, Attrs: attrs}); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// WriteGeoJSON encodes a Layer as a GeoJSON FeatureCollection.
func WriteGeoJSON(l *Layer) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, f := range l.Features() {
		gf := geojson.NewFeature(f.Geometry)
		gf.ID = f.ID
		for _, n := range f.Attrs.Names() {
			v, _ := f.Attrs.Get(n)
			gf.Properties[n] = v
		}
		fc.Append(gf)
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err)
	}
	return data, nil
}

// LoadFile reads a GeoJSON file into a Layer named after the path.
func LoadFile(path string) (*Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("reading %s", path), err)
	}
	return ReadGeoJSON(data, path)
}

// SaveFile writes a Layer to a GeoJSON file.
func SaveFile(l *Layer, path string) error {
	data, err := WriteGeoJSON(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IOError(fmt.Sprintf("writing %s", path), err)
	}
	return nil
}

// featureID extracts a numeric feature id, falling back to the given default.
func featureID(f *geojson.Feature, fallback int64) int64 {
	switch id := f.ID.(type) {
	case float64:
		return int64(id)
	case int64:
		return id
	case int:
		return int64(id)
	case json.Number:
		if n, err := id.Int64(); err == nil {
			return n
		}
	}
	return fallback
}
