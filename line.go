package thematika

import (
	"github.com/shimizu/thematika/log"

	svg "github.com/ajstarks/svgo/float"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// LineLayer draws LineString and MultiLineString features as stroked
// paths, optionally smoothed with quadratic midpoint curves.
type LineLayer struct {
	baseLayer
	features []*geojson.Feature
	smooth   bool
}

func NewLineLayer(name string, fc *geojson.FeatureCollection, style Style) (*LineLayer, error) {
	l := &LineLayer{
		baseLayer: newBaseLayer(KindLine, name, style, DefaultLineStyle),
	}
	feats, err := validateFeatures(fc, l.logTag)
	if err != nil {
		return nil, err
	}
	l.features = feats
	return l, nil
}

func (l *LineLayer) SetSmooth(smooth bool) {
	l.smooth = smooth
}

func (l *LineLayer) Render(canvas *svg.SVG, proj Projection) error {
	attr := l.style.shapeAttr()
	for _, f := range l.features {
		var lines []orb.LineString
		switch g := f.Geometry.(type) {
		case orb.LineString:
			lines = []orb.LineString{g}
		case orb.MultiLineString:
			lines = g
		default:
			log.Debug(l.logTag+"non-line geometry skipped", zap.String("type", f.Geometry.GeoJSONType()))
			continue
		}
		for _, ls := range lines {
			segs := projectLineString(ls, proj)
			if len(segs) == 0 {
				continue
			}
			var d string
			if l.smooth {
				d = smoothPathFromSegments(segs)
			} else {
				d = pathFromSegments(segs, false)
			}
			canvas.Path(d, attr)
		}
	}
	return nil
}
