package thematika

import (
	"os"

	"github.com/paulmach/orb/geojson"
	"gopkg.in/yaml.v2"
)

// MapSpec is the declarative yaml description of a map: a viewport, a
// projection and an ordered layer list.
type MapSpec struct {
	Width      float64        `yaml:"width"`
	Height     float64        `yaml:"height"`
	Background string         `yaml:"background"`
	Projection ProjectionSpec `yaml:"projection"`
	Layers     []LayerSpec    `yaml:"layers"`
}

type ProjectionSpec struct {
	Name      string     `yaml:"name"`
	CenterLon float64    `yaml:"center-lon"`
	CenterLat float64    `yaml:"center-lat"`
	Parallels []float64  `yaml:"parallels"`
	Fit       *GeoBounds `yaml:"fit"`
	Padding   float64    `yaml:"padding"`
}

type LayerSpec struct {
	Kind          string        `yaml:"kind"`
	Name          string        `yaml:"name"`
	Data          string        `yaml:"data"`
	Image         string        `yaml:"image"`
	Bounds        *GeoBounds    `yaml:"bounds"`
	Label         string        `yaml:"label"`
	Value         string        `yaml:"value"`
	Step          float64       `yaml:"step"`
	Smooth        bool          `yaml:"smooth"`
	Declutter     bool          `yaml:"declutter"`
	Resampling    string        `yaml:"resampling"`
	Mask          bool          `yaml:"mask"`
	ForceAdvanced bool          `yaml:"force-advanced"`
	Hidden        bool          `yaml:"hidden"`
	Bundle        bool          `yaml:"bundle"`
	Flows         []Flow        `yaml:"flows"`
	Entries       []LegendEntry `yaml:"entries"`
	X             float64       `yaml:"x"`
	Y             float64       `yaml:"y"`
	Style         Style         `yaml:"style"`
}

func LoadMapSpec(path string) (*MapSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	spec := &MapSpec{}
	if err = yaml.Unmarshal(data, spec); err != nil {
		return nil, err
	}
	if spec.Width <= 0 {
		spec.Width = 800
	}
	if spec.Height <= 0 {
		spec.Height = 500
	}
	return spec, nil
}

// Build constructs the Atlas the spec describes, loading referenced
// GeoJSON and raster files relative to the working directory.
func (s *MapSpec) Build() (*Atlas, error) {
	proj, err := s.Projection.build(s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	atlas := NewAtlas(s.Width, s.Height, proj)
	if s.Background != "" {
		atlas.SetBackground(s.Background)
	}
	for i := range s.Layers {
		l, err := s.Layers[i].build()
		if err != nil {
			return nil, err
		}
		atlas.AddLayer(l)
		if s.Layers[i].Hidden {
			l.SetVisible(false)
		}
	}
	return atlas, nil
}

func (p ProjectionSpec) build(width, height float64) (Projection, error) {
	var base Projection
	switch p.Name {
	case "", "equirectangular":
		base = NewEquirectangular(1, 0, 0)
	case "mercator":
		base = NewMercator(1, 0, 0)
	case "orthographic":
		base = NewOrthographic(1, p.CenterLon, p.CenterLat, 0, 0)
	case "conic-equal-area", "albers":
		p1, p2 := 20.0, 50.0
		if len(p.Parallels) == 2 {
			p1, p2 = p.Parallels[0], p.Parallels[1]
		}
		base = NewConicEqualArea(1, p.CenterLon, p.CenterLat, p1, p2, 0, 0)
	default:
		return nil, ErrUnknownProjection
	}
	fit := GeoBounds{West: -179.9, South: -80, East: 179.9, North: 80}
	if p.Fit != nil {
		fit = *p.Fit
	}
	padding := p.Padding
	if padding == 0 {
		padding = 10
	}
	return FitProjection(base, fit, width, height, padding)
}

func (l LayerSpec) build() (Layer, error) {
	style := l.Style
	switch l.Kind {
	case "point":
		fc, err := readFeatures(l.Data)
		if err != nil {
			return nil, err
		}
		layer, err := NewPointLayer(l.Name, fc, style)
		if err != nil {
			return nil, err
		}
		if l.Value != "" {
			layer.SetRadiusProperty(l.Value)
		}
		return layer, nil
	case "line":
		fc, err := readFeatures(l.Data)
		if err != nil {
			return nil, err
		}
		layer, err := NewLineLayer(l.Name, fc, style)
		if err != nil {
			return nil, err
		}
		layer.SetSmooth(l.Smooth)
		return layer, nil
	case "polygon":
		fc, err := readFeatures(l.Data)
		if err != nil {
			return nil, err
		}
		return NewPolygonLayer(l.Name, fc, style)
	case "symbol":
		fc, err := readFeatures(l.Data)
		if err != nil {
			return nil, err
		}
		return NewSymbolLayer(l.Name, fc, l.Value, style)
	case "text":
		fc, err := readFeatures(l.Data)
		if err != nil {
			return nil, err
		}
		layer, err := NewTextLayer(l.Name, fc, l.Label, style)
		if err != nil {
			return nil, err
		}
		if l.Declutter {
			layer.SetDeclutter(true, 0, l.Value)
		}
		return layer, nil
	case "graticule":
		return NewGraticuleLayer(l.Name, l.Step, style), nil
	case "flow":
		layer, err := NewFlowLayer(l.Name, l.Flows, style)
		if err != nil {
			return nil, err
		}
		layer.SetBundling(l.Bundle, 0, 0)
		return layer, nil
	case "raster":
		var bounds GeoBounds
		if l.Bounds != nil {
			bounds = *l.Bounds
		}
		opts := ReprojectOptions{
			Mask:          l.Mask,
			ForceAdvanced: l.ForceAdvanced,
		}
		if l.Resampling == "bilinear" {
			opts.Resampling = ResampleBilinear
		}
		return NewRasterLayerFromFile(l.Name, l.Image, bounds, opts, style)
	case "legend":
		return NewLegendLayer(l.Name, l.Entries, l.X, l.Y, style), nil
	default:
		return nil, ErrUnknownLayerKind
	}
}

func readFeatures(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return geojson.UnmarshalFeatureCollection(data)
}
