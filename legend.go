package thematika

import (
	svg "github.com/ajstarks/svgo/float"
)

// LegendEntry is one swatch/label pair.
type LegendEntry struct {
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

// LegendLayer draws a vertical swatch legend at a fixed screen position.
// It ignores the projection.
type LegendLayer struct {
	baseLayer
	title   string
	entries []LegendEntry
	x, y    float64
	swatch  float64
	gap     float64
}

func NewLegendLayer(title string, entries []LegendEntry, x, y float64, style Style) *LegendLayer {
	return &LegendLayer{
		baseLayer: newBaseLayer(KindLegend, title, style, DefaultTextStyle),
		title:     title,
		entries:   entries,
		x:         x,
		y:         y,
		swatch:    12,
		gap:       6,
	}
}

func (l *LegendLayer) Render(canvas *svg.SVG, proj Projection) error {
	s := l.style
	s.TextAnchor = "start"
	y := l.y
	if l.title != "" {
		title := s
		title.FontSize = s.FontSize + 2
		canvas.Text(l.x, y, l.title, title.textAttr())
		y += title.FontSize + l.gap
	}
	for _, e := range l.entries {
		canvas.Rect(l.x, y, l.swatch, l.swatch,
			"fill:"+e.Color+";stroke:#999999;stroke-width:0.5")
		canvas.Text(l.x+l.swatch+l.gap, y+l.swatch-2, e.Label, s.textAttr())
		y += l.swatch + l.gap
	}
	return nil
}
