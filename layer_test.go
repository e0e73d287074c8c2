package thematika

import (
	"testing"

	"github.com/cheekybits/is"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func TestPropFloat(t *testing.T) {
	is := is.New(t)

	f := geojson.NewFeature(orb.Point{0, 0})
	f.Properties["num"] = 2.5
	f.Properties["str"] = "3.5"
	f.Properties["int"] = 7
	f.Properties["junk"] = "n/a"
	f.Properties["empty"] = ""

	is.Equal(propFloat(f, "num", 1), 2.5)
	is.Equal(propFloat(f, "str", 1), 3.5)
	is.Equal(propFloat(f, "int", 1), 7.0)
	is.Equal(propFloat(f, "junk", 1), 0.0)
	is.Equal(propFloat(f, "empty", 1), 1.0)
	is.Equal(propFloat(f, "missing", 1), 1.0)
}

func TestSymbolLayerStringValuedProperty(t *testing.T) {
	is := is.New(t)

	// hand-edited GeoJSON often quotes its numbers
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Point{0, 0})
	f.Properties["pop"] = "37.4"
	fc.Append(f)

	layer, err := NewSymbolLayer("pop", fc, "pop", Style{})
	is.NoErr(err)
	is.Equal(layer.maxValue, 37.4)
}
