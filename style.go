package thematika

import (
	"strings"

	"github.com/shimizu/thematika/utils"
)

// Style is the resolved visual configuration of a layer. It is built once
// at layer construction by merging the caller's values over the kind's
// defaults; render calls never merge again. Zero fields mean "unset" and
// take the default.
type Style struct {
	Fill          string  `yaml:"fill"`
	FillOpacity   float64 `yaml:"fill-opacity"`
	Stroke        string  `yaml:"stroke"`
	StrokeWidth   float64 `yaml:"stroke-width"`
	StrokeOpacity float64 `yaml:"stroke-opacity"`
	Opacity       float64 `yaml:"opacity"`
	DashArray     string  `yaml:"dash-array"`
	Radius        float64 `yaml:"radius"`
	FontFamily    string  `yaml:"font-family"`
	FontSize      float64 `yaml:"font-size"`
	TextAnchor    string  `yaml:"text-anchor"`
	HaloColor     string  `yaml:"halo-color"`
	HaloWidth     float64 `yaml:"halo-width"`
}

var (
	DefaultPolygonStyle = Style{
		Fill:          "#cccccc",
		FillOpacity:   1,
		Stroke:        "#333333",
		StrokeWidth:   0.5,
		StrokeOpacity: 1,
		Opacity:       1,
	}
	DefaultLineStyle = Style{
		Fill:          "none",
		Stroke:        "#1f78b4",
		StrokeWidth:   1,
		StrokeOpacity: 1,
		Opacity:       1,
	}
	DefaultPointStyle = Style{
		Fill:          "#e31a1c",
		FillOpacity:   0.8,
		Stroke:        "#ffffff",
		StrokeWidth:   0.5,
		StrokeOpacity: 1,
		Opacity:       1,
		Radius:        3,
	}
	DefaultTextStyle = Style{
		Fill:       "#222222",
		Opacity:    1,
		FontFamily: "sans-serif",
		FontSize:   11,
		TextAnchor: "middle",
		HaloColor:  "#ffffff",
		HaloWidth:  2,
	}
	DefaultGraticuleStyle = Style{
		Fill:          "none",
		Stroke:        "#bbbbbb",
		StrokeWidth:   0.5,
		StrokeOpacity: 0.8,
		Opacity:       1,
	}
	DefaultFlowStyle = Style{
		Fill:          "none",
		Stroke:        "#ff7f00",
		StrokeWidth:   1.5,
		StrokeOpacity: 0.6,
		Opacity:       1,
	}
)

// Resolve fills unset fields from defaults and returns the merged style.
func (s Style) Resolve(defaults Style) Style {
	if s.Fill == "" {
		s.Fill = defaults.Fill
	}
	if s.FillOpacity == 0 {
		s.FillOpacity = defaults.FillOpacity
	}
	if s.Stroke == "" {
		s.Stroke = defaults.Stroke
	}
	if s.StrokeWidth == 0 {
		s.StrokeWidth = defaults.StrokeWidth
	}
	if s.StrokeOpacity == 0 {
		s.StrokeOpacity = defaults.StrokeOpacity
	}
	if s.Opacity == 0 {
		s.Opacity = defaults.Opacity
	}
	if s.DashArray == "" {
		s.DashArray = defaults.DashArray
	}
	if s.Radius == 0 {
		s.Radius = defaults.Radius
	}
	if s.FontFamily == "" {
		s.FontFamily = defaults.FontFamily
	}
	if s.FontSize == 0 {
		s.FontSize = defaults.FontSize
	}
	if s.TextAnchor == "" {
		s.TextAnchor = defaults.TextAnchor
	}
	if s.HaloColor == "" {
		s.HaloColor = defaults.HaloColor
	}
	if s.HaloWidth == 0 {
		s.HaloWidth = defaults.HaloWidth
	}
	return s
}

// shapeAttr renders the fill/stroke properties as an svgo style string.
func (s Style) shapeAttr() string {
	var b strings.Builder
	b.WriteString("fill:")
	b.WriteString(s.Fill)
	if s.Fill != "none" && s.FillOpacity != 1 {
		b.WriteString(";fill-opacity:")
		b.WriteString(utils.Ftoa(s.FillOpacity, 3))
	}
	b.WriteString(";stroke:")
	if s.Stroke == "" {
		b.WriteString("none")
	} else {
		b.WriteString(s.Stroke)
	}
	if s.Stroke != "" && s.Stroke != "none" {
		b.WriteString(";stroke-width:")
		b.WriteString(utils.Ftoa(s.StrokeWidth, 3))
		if s.StrokeOpacity != 1 {
			b.WriteString(";stroke-opacity:")
			b.WriteString(utils.Ftoa(s.StrokeOpacity, 3))
		}
		if s.DashArray != "" {
			b.WriteString(";stroke-dasharray:")
			b.WriteString(s.DashArray)
		}
	}
	if s.Opacity != 1 {
		b.WriteString(";opacity:")
		b.WriteString(utils.Ftoa(s.Opacity, 3))
	}
	return b.String()
}

// textAttr renders the font properties as an svgo style string.
func (s Style) textAttr() string {
	var b strings.Builder
	b.WriteString("fill:")
	b.WriteString(s.Fill)
	b.WriteString(";font-family:")
	b.WriteString(s.FontFamily)
	b.WriteString(";font-size:")
	b.WriteString(utils.Ftoa(s.FontSize, 1))
	b.WriteString("px;text-anchor:")
	b.WriteString(s.TextAnchor)
	return b.String()
}

func (s Style) haloAttr() string {
	var b strings.Builder
	b.WriteString("fill:none;stroke:")
	b.WriteString(s.HaloColor)
	b.WriteString(";stroke-width:")
	b.WriteString(utils.Ftoa(s.HaloWidth, 1))
	b.WriteString(";font-family:")
	b.WriteString(s.FontFamily)
	b.WriteString(";font-size:")
	b.WriteString(utils.Ftoa(s.FontSize, 1))
	b.WriteString("px;text-anchor:")
	b.WriteString(s.TextAnchor)
	b.WriteString(";stroke-linejoin:round")
	return b.String()
}
