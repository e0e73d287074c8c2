package thematika

import (
	"math"

	"github.com/shimizu/thematika/log"

	svg "github.com/ajstarks/svgo/float"
	"github.com/golang/geo/s2"
	"go.uber.org/zap"
)

// Flow is one origin/destination movement drawn as a great-circle arc.
type Flow struct {
	FromLon float64 `yaml:"from-lon"`
	FromLat float64 `yaml:"from-lat"`
	ToLon   float64 `yaml:"to-lon"`
	ToLat   float64 `yaml:"to-lat"`
	Value   float64 `yaml:"value"`
}

// FlowLayer draws flows along great circles, stroke width scaled by value.
// Optional force-directed bundling pulls compatible arcs together into
// shared corridors.
type FlowLayer struct {
	baseLayer
	flows    []Flow
	segments int
	maxValue float64

	bundle      bool
	bundleIters int
	stiffness   float64
}

func NewFlowLayer(name string, flows []Flow, style Style) (*FlowLayer, error) {
	if len(flows) == 0 {
		return nil, ErrNoFlows
	}
	l := &FlowLayer{
		baseLayer:   newBaseLayer(KindFlow, name, style, DefaultFlowStyle),
		flows:       flows,
		segments:    DefaultFlowSegments,
		bundleIters: DefaultBundleIterations,
		stiffness:   DefaultBundleStiffness,
	}
	for _, f := range flows {
		if f.Value > l.maxValue {
			l.maxValue = f.Value
		}
	}
	return l, nil
}

// SetBundling enables edge bundling; iterations and stiffness zero keep
// the defaults.
func (l *FlowLayer) SetBundling(enabled bool, iterations int, stiffness float64) {
	l.bundle = enabled
	if iterations > 0 {
		l.bundleIters = iterations
	}
	if stiffness > 0 {
		l.stiffness = stiffness
	}
}

func (l *FlowLayer) SetSegments(n int) {
	if n >= 2 {
		l.segments = n
	}
}

// greatCircle samples the spherical arc between the flow endpoints.
func greatCircle(f Flow, segments int) [][2]float64 {
	a := s2.PointFromLatLng(s2.LatLngFromDegrees(f.FromLat, f.FromLon))
	b := s2.PointFromLatLng(s2.LatLngFromDegrees(f.ToLat, f.ToLon))
	pts := make([][2]float64, segments+1)
	for i := 0; i <= segments; i++ {
		ll := s2.LatLngFromPoint(s2.Interpolate(float64(i)/float64(segments), a, b))
		pts[i] = [2]float64{ll.Lng.Degrees(), ll.Lat.Degrees()}
	}
	return pts
}

func (l *FlowLayer) Render(canvas *svg.SVG, proj Projection) error {
	paths := make([][][2]float64, 0, len(l.flows))
	widths := make([]float64, 0, len(l.flows))
	for _, f := range l.flows {
		geo := greatCircle(f, l.segments)
		var cur [][2]float64
		for _, pt := range geo {
			x, y, ok := proj.Project(pt[0], pt[1])
			if !ok {
				// arcs leaving the projection domain are not bundled
				// piecewise, the whole flow is dropped instead
				cur = nil
				break
			}
			cur = append(cur, [2]float64{x, y})
		}
		if len(cur) < 2 {
			log.Debug(l.logTag+"flow outside projection domain skipped",
				zap.Float64("fromLon", f.FromLon), zap.Float64("toLon", f.ToLon))
			continue
		}
		paths = append(paths, cur)
		w := l.style.StrokeWidth
		if l.maxValue > 0 && f.Value > 0 {
			w *= 0.5 + 2*math.Sqrt(f.Value/l.maxValue)
		}
		widths = append(widths, w)
	}
	if l.bundle && len(paths) > 1 {
		bundlePaths(paths, l.bundleIters, l.stiffness)
	}
	for i, p := range paths {
		s := l.style
		s.StrokeWidth = widths[i]
		canvas.Path(smoothPathFromSegments([][][2]float64{p}), s.shapeAttr())
	}
	return nil
}

// bundlePaths runs a spring-electric relaxation over the interior control
// points of the projected arcs. Endpoints stay pinned; each point feels a
// spring toward its neighbors along the arc and an attraction toward the
// same-parameter point of every compatible arc.
func bundlePaths(paths [][][2]float64, iterations int, stiffness float64) {
	n := len(paths)
	compat := make([][]float64, n)
	for i := range compat {
		compat[i] = make([]float64, n)
		for j := range compat[i] {
			if i != j {
				compat[i][j] = compatibility(paths[i], paths[j])
			}
		}
	}
	for it := 0; it < iterations; it++ {
		for i, p := range paths {
			for k := 1; k < len(p)-1; k++ {
				fx := (p[k-1][0] + p[k+1][0] - 2*p[k][0]) * stiffness
				fy := (p[k-1][1] + p[k+1][1] - 2*p[k][1]) * stiffness
				for j, q := range paths {
					c := compat[i][j]
					if c < 0.6 {
						continue
					}
					// nearest same-parameter point on the other arc
					m := k * (len(q) - 1) / (len(p) - 1)
					dx := q[m][0] - p[k][0]
					dy := q[m][1] - p[k][1]
					d := math.Hypot(dx, dy)
					if d < 1e-6 {
						continue
					}
					fx += c * dx / d
					fy += c * dy / d
				}
				p[k][0] += fx
				p[k][1] += fy
			}
		}
	}
}

// compatibility scores how much two arcs should attract, from the length
// ratio and the distance between midpoints relative to arc length.
func compatibility(a, b [][2]float64) float64 {
	la := math.Hypot(a[len(a)-1][0]-a[0][0], a[len(a)-1][1]-a[0][1])
	lb := math.Hypot(b[len(b)-1][0]-b[0][0], b[len(b)-1][1]-b[0][1])
	if la == 0 || lb == 0 {
		return 0
	}
	lenScore := math.Min(la, lb) / math.Max(la, lb)
	am := a[len(a)/2]
	bm := b[len(b)/2]
	avg := (la + lb) / 2
	distScore := avg / (avg + math.Hypot(am[0]-bm[0], am[1]-bm[1]))
	return lenScore * distScore
}
