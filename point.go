package thematika

import (
	"github.com/shimizu/thematika/log"

	svg "github.com/ajstarks/svgo/float"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// PointLayer draws point features as circles. Non-point geometries in the
// collection are skipped.
type PointLayer struct {
	baseLayer
	features   []*geojson.Feature
	radiusProp string
}

func NewPointLayer(name string, fc *geojson.FeatureCollection, style Style) (*PointLayer, error) {
	l := &PointLayer{
		baseLayer: newBaseLayer(KindPoint, name, style, DefaultPointStyle),
	}
	feats, err := validateFeatures(fc, l.logTag)
	if err != nil {
		return nil, err
	}
	l.features = feats
	return l, nil
}

// SetRadiusProperty reads the per-feature radius from a numeric property
// instead of the style radius.
func (l *PointLayer) SetRadiusProperty(prop string) {
	l.radiusProp = prop
}

func (l *PointLayer) Render(canvas *svg.SVG, proj Projection) error {
	attr := l.style.shapeAttr()
	drawn := 0
	for _, f := range l.features {
		r := l.style.Radius
		if l.radiusProp != "" {
			r = propFloat(f, l.radiusProp, l.style.Radius)
		}
		switch g := f.Geometry.(type) {
		case orb.Point:
			drawn += l.circle(canvas, proj, g, r, attr)
		case orb.MultiPoint:
			for _, pt := range g {
				drawn += l.circle(canvas, proj, pt, r, attr)
			}
		default:
			log.Debug(l.logTag+"non-point geometry skipped", zap.String("type", f.Geometry.GeoJSONType()))
		}
	}
	log.Debug(l.logTag+"rendered", zap.String("name", l.name), zap.Int("points", drawn))
	return nil
}

func (l *PointLayer) circle(canvas *svg.SVG, proj Projection, pt orb.Point, r float64, attr string) int {
	x, y, ok := proj.Project(pt[0], pt[1])
	if !ok {
		return 0
	}
	canvas.Circle(x, y, r, attr)
	return 1
}
