package thematika

import (
	"math"

	"github.com/shimizu/thematika/log"

	svg "github.com/ajstarks/svgo/float"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type SymbolShape int

const (
	SymbolCircle SymbolShape = iota
	SymbolSquare
	SymbolTriangle
)

// SymbolLayer draws proportional symbols at feature centroids, with the
// symbol area scaled to a numeric property.
type SymbolLayer struct {
	baseLayer
	features  []*geojson.Feature
	valueProp string
	maxValue  float64
	maxRadius float64
	shape     SymbolShape
}

func NewSymbolLayer(name string, fc *geojson.FeatureCollection, valueProp string, style Style) (*SymbolLayer, error) {
	l := &SymbolLayer{
		baseLayer: newBaseLayer(KindSymbol, name, style, DefaultPointStyle),
		valueProp: valueProp,
		maxRadius: DefaultSymbolMaxRadius,
	}
	feats, err := validateFeatures(fc, l.logTag)
	if err != nil {
		return nil, err
	}
	l.features = feats
	for _, f := range feats {
		if v := propFloat(f, valueProp, 0); v > l.maxValue {
			l.maxValue = v
		}
	}
	return l, nil
}

func (l *SymbolLayer) SetMaxRadius(r float64) {
	if r > 0 {
		l.maxRadius = r
	}
}

func (l *SymbolLayer) SetShape(s SymbolShape) {
	l.shape = s
}

// radiusFor scales symbol area, not radius, with the value.
func (l *SymbolLayer) radiusFor(v float64) float64 {
	if l.maxValue <= 0 || v <= 0 {
		return 0
	}
	return l.maxRadius * math.Sqrt(v/l.maxValue)
}

func (l *SymbolLayer) Render(canvas *svg.SVG, proj Projection) error {
	attr := l.style.shapeAttr()
	for _, f := range l.features {
		r := l.radiusFor(propFloat(f, l.valueProp, 0))
		if r <= 0 {
			continue
		}
		var lon, lat float64
		if pt, isPt := f.Geometry.(orb.Point); isPt {
			lon, lat = pt[0], pt[1]
		} else {
			lon, lat = Centroid(f.Geometry)
		}
		x, y, ok := proj.Project(lon, lat)
		if !ok {
			log.Debug(l.logTag+"centroid outside projection domain", zap.Float64("lon", lon), zap.Float64("lat", lat))
			continue
		}
		switch l.shape {
		case SymbolSquare:
			s := r * math.Sqrt(math.Pi) // equal area to the circle of radius r
			canvas.Rect(x-s/2, y-s/2, s, s, attr)
		case SymbolTriangle:
			s := r * math.Sqrt(math.Pi*4/math.Sqrt(3))
			h := s * math.Sqrt(3) / 2
			canvas.Polygon(
				[]float64{x, x - s/2, x + s/2},
				[]float64{y - 2*h/3, y + h/3, y + h/3},
				attr)
		default:
			canvas.Circle(x, y, r, attr)
		}
	}
	return nil
}
