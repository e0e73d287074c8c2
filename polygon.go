package thematika

import (
	"github.com/shimizu/thematika/log"

	svg "github.com/ajstarks/svgo/float"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// ColorFunc maps a feature to a fill color, the hook for choropleth
// scales. Returning an empty string keeps the layer fill.
type ColorFunc func(f *geojson.Feature) string

// PolygonLayer draws Polygon and MultiPolygon features as filled paths.
// Rings share one path and render holes through the even-odd fill rule.
type PolygonLayer struct {
	baseLayer
	features []*geojson.Feature
	colorFn  ColorFunc
}

func NewPolygonLayer(name string, fc *geojson.FeatureCollection, style Style) (*PolygonLayer, error) {
	l := &PolygonLayer{
		baseLayer: newBaseLayer(KindPolygon, name, style, DefaultPolygonStyle),
	}
	feats, err := validateFeatures(fc, l.logTag)
	if err != nil {
		return nil, err
	}
	l.features = feats
	return l, nil
}

// SetColorFunc installs a per-feature fill, e.g. a choropleth scale over a
// property.
func (l *PolygonLayer) SetColorFunc(fn ColorFunc) {
	l.colorFn = fn
}

func (l *PolygonLayer) Render(canvas *svg.SVG, proj Projection) error {
	attr := l.style.shapeAttr()
	for _, f := range l.features {
		var d string
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			d = polygonPath(g, proj)
		case orb.MultiPolygon:
			d = multiPolygonPath(g, proj)
		default:
			log.Debug(l.logTag+"non-polygon geometry skipped", zap.String("type", f.Geometry.GeoJSONType()))
			continue
		}
		if d == "" {
			continue
		}
		a := attr
		if l.colorFn != nil {
			if c := l.colorFn(f); c != "" {
				s := l.style
				s.Fill = c
				a = s.shapeAttr()
			}
		}
		canvas.Path(d, a, `fill-rule="evenodd"`)
	}
	return nil
}
