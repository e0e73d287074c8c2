package thematika

import (
	svg "github.com/ajstarks/svgo/float"
	"github.com/paulmach/orb"
)

// GraticuleLayer draws a meridian/parallel grid, densified so curved
// projections bend the lines smoothly, plus the projection's valid-domain
// outline when the projection can describe one.
type GraticuleLayer struct {
	baseLayer
	step    float64
	precis  float64
	outline bool
}

func NewGraticuleLayer(name string, step float64, style Style) *GraticuleLayer {
	if step <= 0 {
		step = DefaultGraticuleStep
	}
	return &GraticuleLayer{
		baseLayer: newBaseLayer(KindGraticule, name, style, DefaultGraticuleStyle),
		step:      step,
		precis:    DefaultGraticulePrecis,
		outline:   true,
	}
}

func (l *GraticuleLayer) SetOutline(outline bool) {
	l.outline = outline
}

func (l *GraticuleLayer) Render(canvas *svg.SVG, proj Projection) error {
	attr := l.style.shapeAttr()
	// parallels stop short of the poles, meridians converge there anyway
	latLimit := 90 - l.step
	for lon := -180.0; lon <= 180; lon += l.step {
		ls := make(orb.LineString, 0, int(2*latLimit/l.precis)+1)
		for lat := -latLimit; lat <= latLimit; lat += l.precis {
			ls = append(ls, orb.Point{lon, lat})
		}
		l.drawLine(canvas, proj, ls, attr)
	}
	for lat := -latLimit; lat <= latLimit; lat += l.step {
		ls := make(orb.LineString, 0, int(360/l.precis)+1)
		for lon := -180.0; lon <= 180; lon += l.precis {
			ls = append(ls, orb.Point{lon, lat})
		}
		l.drawLine(canvas, proj, ls, attr)
	}
	if out, ok := proj.(Outliner); ok && l.outline {
		if pts := out.DomainOutline(180); len(pts) > 1 {
			canvas.Path(pathFromSegments([][][2]float64{pts}, true), attr)
		}
	}
	return nil
}

func (l *GraticuleLayer) drawLine(canvas *svg.SVG, proj Projection, ls orb.LineString, attr string) {
	segs := projectLineString(ls, proj)
	if len(segs) == 0 {
		return
	}
	canvas.Path(pathFromSegments(segs, false), attr)
}
