package thematika

import (
	"github.com/shimizu/thematika/log"

	svg "github.com/ajstarks/svgo/float"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// TextLayer draws labels at feature anchors (the point itself, or the
// centroid for other geometries). Labels are NFC-normalized; an optional
// declutter pass drops labels whose anchors crowd a kept neighbor.
type TextLayer struct {
	baseLayer
	features     []*geojson.Feature
	labelProp    string
	priorityProp string
	declutter    bool
	declutterMin float64
	halo         bool
}

func NewTextLayer(name string, fc *geojson.FeatureCollection, labelProp string, style Style) (*TextLayer, error) {
	l := &TextLayer{
		baseLayer:    newBaseLayer(KindText, name, style, DefaultTextStyle),
		labelProp:    labelProp,
		declutterMin: DefaultDeclutterDist,
		halo:         true,
	}
	feats, err := validateFeatures(fc, l.logTag)
	if err != nil {
		return nil, err
	}
	l.features = feats
	return l, nil
}

// SetDeclutter enables the Delaunay declutter pass; priorityProp names a
// numeric property ranking label importance (higher wins), empty keeps
// collection order.
func (l *TextLayer) SetDeclutter(enabled bool, minDist float64, priorityProp string) {
	l.declutter = enabled
	if minDist > 0 {
		l.declutterMin = minDist
	}
	l.priorityProp = priorityProp
}

func (l *TextLayer) SetHalo(halo bool) {
	l.halo = halo
}

type placedLabel struct {
	x, y  float64
	label string
}

func (l *TextLayer) Render(canvas *svg.SVG, proj Projection) error {
	var labels []placedLabel
	var anchors []anchor
	for i, f := range l.features {
		label := f.Properties.MustString(l.labelProp, "")
		if label == "" {
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
			continue
		}
		labels = append(labels, placedLabel{x: x, y: y, label: norm.NFC.String(label)})
		prio := float64(len(l.features) - i)
		if l.priorityProp != "" {
			prio = propFloat(f, l.priorityProp, 0)
		}
		anchors = append(anchors, anchor{X: x, Y: y, Priority: prio})
	}
	keep := make([]bool, len(labels))
	for i := range keep {
		keep[i] = true
	}
	if l.declutter && len(labels) > 1 {
		keep = declutterKeep(anchors, l.declutterMin)
	}
	textAttr := l.style.textAttr()
	haloAttr := l.style.haloAttr()
	kept := 0
	for i, p := range labels {
		if !keep[i] {
			continue
		}
		if l.halo {
			canvas.Text(p.x, p.y, p.label, haloAttr)
		}
		canvas.Text(p.x, p.y, p.label, textAttr)
		kept++
	}
	log.Debug(l.logTag+"rendered", zap.String("name", l.name), zap.Int("labels", kept), zap.Int("dropped", len(labels)-kept))
	return nil
}
