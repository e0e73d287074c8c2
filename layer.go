package thematika

import (
	"strings"

	"github.com/shimizu/thematika/log"
	"github.com/shimizu/thematika/utils"

	svg "github.com/ajstarks/svgo/float"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type LayerKind int

const (
	KindPoint LayerKind = iota
	KindLine
	KindPolygon
	KindSymbol
	KindText
	KindGraticule
	KindFlow
	KindRaster
	KindLegend
)

var layerKindNames = [...]string{
	"point", "line", "polygon", "symbol", "text",
	"graticule", "flow", "raster", "legend",
}

func (k LayerKind) String() string {
	if k < 0 || int(k) >= len(layerKindNames) {
		return "unknown"
	}
	return layerKindNames[k]
}

// Layer draws one class of features into the shared SVG scene. The Atlas
// owns z-order and visibility; a layer only knows how to render itself
// under the Atlas projection.
type Layer interface {
	ID() string
	Name() string
	Kind() LayerKind
	Visible() bool
	SetVisible(bool)
	Render(canvas *svg.SVG, proj Projection) error
}

type baseLayer struct {
	id      string
	name    string
	kind    LayerKind
	visible bool
	style   Style
	logTag  string
}

func newBaseLayer(kind LayerKind, name string, style, defaults Style) baseLayer {
	return baseLayer{
		id:      uuid.NewString(),
		name:    name,
		kind:    kind,
		visible: true,
		style:   style.Resolve(defaults),
		logTag:  kind.String() + "Layer:",
	}
}

func (l *baseLayer) ID() string         { return l.id }
func (l *baseLayer) Name() string       { return l.name }
func (l *baseLayer) Kind() LayerKind    { return l.kind }
func (l *baseLayer) Visible() bool      { return l.visible }
func (l *baseLayer) SetVisible(v bool)  { l.visible = v }
func (l *baseLayer) Style() Style       { return l.style }

// validateFeatures drops features without geometry and fails on an empty
// collection, the shared front of every vector layer pipeline.
func validateFeatures(fc *geojson.FeatureCollection, logTag string) ([]*geojson.Feature, error) {
	if fc == nil || len(fc.Features) == 0 {
		return nil, ErrNoFeatures
	}
	out := make([]*geojson.Feature, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			log.Warn(logTag+"feature without geometry skipped", zap.Int("index", i))
			continue
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, ErrNoFeatures
	}
	return out, nil
}

func fmtCoord(f float64) string {
	return utils.Ftoa(f, coordDecimals)
}

// propFloat reads a numeric feature property, accepting numbers encoded as
// strings, a common sloppiness in hand-edited GeoJSON.
func propFloat(f *geojson.Feature, key string, def float64) float64 {
	switch v := f.Properties[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if v == "" {
			return def
		}
		return utils.StrToFloat(v)
	default:
		return def
	}
}

// projectLineString projects a line, splitting it into separate segments
// wherever a vertex leaves the projection domain.
func projectLineString(ls orb.LineString, proj Projection) [][][2]float64 {
	var segs [][][2]float64
	var cur [][2]float64
	for _, pt := range ls {
		x, y, ok := proj.Project(pt[0], pt[1])
		if !ok {
			if len(cur) > 1 {
				segs = append(segs, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, [2]float64{x, y})
	}
	if len(cur) > 1 {
		segs = append(segs, cur)
	}
	return segs
}

// pathFromSegments builds SVG path data from projected segments.
func pathFromSegments(segs [][][2]float64, closed bool) string {
	var b strings.Builder
	for _, seg := range segs {
		for i, pt := range seg {
			if i == 0 {
				b.WriteByte('M')
			} else {
				b.WriteByte('L')
			}
			b.WriteString(fmtCoord(pt[0]))
			b.WriteByte(',')
			b.WriteString(fmtCoord(pt[1]))
		}
		if closed {
			b.WriteByte('Z')
		}
	}
	return b.String()
}

// smoothPathFromSegments builds path data with quadratic curves through
// segment midpoints, used for smoothed line rendering.
func smoothPathFromSegments(segs [][][2]float64) string {
	var b strings.Builder
	for _, seg := range segs {
		if len(seg) < 3 {
			b.WriteString(pathFromSegments([][][2]float64{seg}, false))
			continue
		}
		b.WriteByte('M')
		b.WriteString(fmtCoord(seg[0][0]))
		b.WriteByte(',')
		b.WriteString(fmtCoord(seg[0][1]))
		for i := 1; i < len(seg)-1; i++ {
			mx := (seg[i][0] + seg[i+1][0]) / 2
			my := (seg[i][1] + seg[i+1][1]) / 2
			b.WriteByte('Q')
			b.WriteString(fmtCoord(seg[i][0]))
			b.WriteByte(',')
			b.WriteString(fmtCoord(seg[i][1]))
			b.WriteByte(' ')
			b.WriteString(fmtCoord(mx))
			b.WriteByte(',')
			b.WriteString(fmtCoord(my))
		}
		last := seg[len(seg)-1]
		b.WriteByte('L')
		b.WriteString(fmtCoord(last[0]))
		b.WriteByte(',')
		b.WriteString(fmtCoord(last[1]))
	}
	return b.String()
}

// polygonPath projects all rings of a polygon into one path; the even-odd
// fill rule set by the caller makes holes render as holes.
func polygonPath(poly orb.Polygon, proj Projection) string {
	var b strings.Builder
	for _, ring := range poly {
		segs := projectLineString(orb.LineString(ring), proj)
		b.WriteString(pathFromSegments(segs, true))
	}
	return b.String()
}

func multiPolygonPath(mp orb.MultiPolygon, proj Projection) string {
	var b strings.Builder
	for _, poly := range mp {
		b.WriteString(polygonPath(poly, proj))
	}
	return b.String()
}
