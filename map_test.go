package thematika

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cheekybits/is"

	svg "github.com/ajstarks/svgo/float"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func cityFeatures() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, c := range []struct {
		lon, lat float64
		name     string
		pop      float64
	}{
		{139.7, 35.7, "Tokyo", 37.4},
		{2.35, 48.9, "Paris", 11.0},
		{-74.0, 40.7, "New York", 18.8},
	} {
		f := geojson.NewFeature(orb.Point{c.lon, c.lat})
		f.Properties["name"] = c.name
		f.Properties["pop"] = c.pop
		fc.Append(f)
	}
	return fc
}

func worldAtlas(t *testing.T) *Atlas {
	t.Helper()
	proj, err := FitProjection(NewEquirectangular(1, 0, 0),
		GeoBounds{West: -179, South: -80, East: 179, North: 80}, 800, 400, 10)
	if err != nil {
		t.Fatal(err)
	}
	return NewAtlas(800, 400, proj)
}

type failingLayer struct {
	baseLayer
}

func (l *failingLayer) Render(canvas *svg.SVG, proj Projection) error {
	return errors.New("boom")
}

func TestAtlasLayerLifecycle(t *testing.T) {
	is := is.New(t)

	atlas := worldAtlas(t)
	points, err := NewPointLayer("cities", cityFeatures(), Style{})
	is.NoErr(err)
	grid := NewGraticuleLayer("grid", 0, Style{})

	gridID := atlas.AddLayer(grid)
	pointsID := atlas.AddLayer(points)
	is.Equal(len(atlas.Layers()), 2)
	is.Equal(atlas.Layer(pointsID), points)
	is.Equal(atlas.Layer("nope"), nil)

	// z-order moves are stable and clamped
	is.NoErr(atlas.MoveLayer(gridID, 5))
	is.Equal(atlas.Layers()[1].ID(), gridID)
	is.NoErr(atlas.MoveLayer(gridID, 0))
	is.Equal(atlas.Layers()[0].ID(), gridID)
	is.Equal(atlas.MoveLayer("nope", 0), ErrLayerNotFound)

	is.NoErr(atlas.HideLayer(pointsID))
	is.Equal(points.Visible(), false)
	is.NoErr(atlas.ShowLayer(pointsID))
	is.Equal(points.Visible(), true)

	is.NoErr(atlas.RemoveLayer(gridID))
	is.Equal(len(atlas.Layers()), 1)
	is.Equal(atlas.RemoveLayer(gridID), ErrLayerNotFound)
}

func TestAtlasRender(t *testing.T) {
	is := is.New(t)

	atlas := worldAtlas(t)
	atlas.SetBackground("#ffffff")
	atlas.AddLayer(NewGraticuleLayer("grid", 15, Style{}))
	points, err := NewPointLayer("cities", cityFeatures(), Style{})
	is.NoErr(err)
	atlas.AddLayer(points)
	labels, err := NewTextLayer("labels", cityFeatures(), "name", Style{})
	is.NoErr(err)
	atlas.AddLayer(labels)

	var buf bytes.Buffer
	is.NoErr(atlas.Render(&buf))
	out := buf.String()
	is.OK(strings.Contains(out, "<svg"))
	is.OK(strings.Contains(out, "</svg>"))
	is.OK(strings.Contains(out, "<circle"))
	is.OK(strings.Contains(out, "Tokyo"))
	is.OK(strings.Contains(out, `data-layer="graticule"`))
}

func TestAtlasRenderSkipsHiddenAndFailing(t *testing.T) {
	is := is.New(t)

	atlas := worldAtlas(t)
	points, err := NewPointLayer("cities", cityFeatures(), Style{})
	is.NoErr(err)

	// a failing layer must not abort its siblings
	atlas.AddLayer(&failingLayer{baseLayer: newBaseLayer(KindPolygon, "bad", Style{}, DefaultPolygonStyle)})
	id := atlas.AddLayer(points)
	labels, err := NewTextLayer("labels", cityFeatures(), "name", Style{})
	is.NoErr(err)
	labelsID := atlas.AddLayer(labels)
	is.NoErr(atlas.HideLayer(labelsID))

	var buf bytes.Buffer
	is.NoErr(atlas.Render(&buf))
	out := buf.String()
	is.OK(strings.Contains(out, "<circle"))
	is.Equal(strings.Contains(out, "Tokyo"), false)
	is.Equal(atlas.Layer(id).Visible(), true)
}

func TestPolygonLayerRender(t *testing.T) {
	is := is.New(t)

	ring := orb.Ring{{0, 0}, {20, 0}, {20, 15}, {0, 15}, {0, 0}}
	hole := orb.Ring{{5, 5}, {10, 5}, {10, 10}, {5, 10}, {5, 5}}
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Polygon{ring, hole})
	f.Properties["density"] = 42.0
	fc.Append(f)

	layer, err := NewPolygonLayer("regions", fc, Style{})
	is.NoErr(err)
	layer.SetColorFunc(func(f *geojson.Feature) string {
		if f.Properties.MustFloat64("density", 0) > 40 {
			return "#084081"
		}
		return ""
	})

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(800, 400)
	is.NoErr(layer.Render(canvas, NewEquirectangular(2, 100, 200)))
	canvas.End()
	out := buf.String()
	is.OK(strings.Contains(out, "fill-rule"))
	is.OK(strings.Contains(out, "#084081"))
	// two rings share one path element
	is.Equal(strings.Count(out, "<path"), 1)
}

func TestValidateFeatures(t *testing.T) {
	is := is.New(t)

	_, err := NewPointLayer("empty", geojson.NewFeatureCollection(), Style{})
	is.Equal(err, ErrNoFeatures)
	_, err = NewPointLayer("nil", nil, Style{})
	is.Equal(err, ErrNoFeatures)
}

func TestSymbolLayerScalesArea(t *testing.T) {
	is := is.New(t)

	layer, err := NewSymbolLayer("pop", cityFeatures(), "pop", Style{})
	is.NoErr(err)
	rMax := layer.radiusFor(37.4)
	rHalf := layer.radiusFor(37.4 / 4)
	is.Equal(rMax, DefaultSymbolMaxRadius)
	// quarter value, half radius: area scales linearly
	is.OK(rHalf > rMax/2-1e-9 && rHalf < rMax/2+1e-9)
	is.Equal(layer.radiusFor(0), 0.0)
}
