package thematika

import (
	"io"

	"github.com/shimizu/thematika/log"

	svg "github.com/ajstarks/svgo/float"
	"go.uber.org/zap"
)

// Atlas composes layers over a single projection and renders them as one
// SVG scene. The layer slice order is the z-order: earlier layers render
// below later ones.
type Atlas struct {
	width      float64
	height     float64
	proj       Projection
	background string
	layers     []Layer
	logTag     string
}

func NewAtlas(width, height float64, proj Projection) *Atlas {
	return &Atlas{
		width:  width,
		height: height,
		proj:   proj,
		logTag: "Atlas:",
	}
}

func (a *Atlas) Width() float64         { return a.width }
func (a *Atlas) Height() float64        { return a.height }
func (a *Atlas) Projection() Projection { return a.proj }

// SetBackground sets a background fill color; empty means transparent.
func (a *Atlas) SetBackground(color string) {
	a.background = color
}

// AddLayer appends a layer on top of the stack and returns its id.
func (a *Atlas) AddLayer(l Layer) string {
	a.layers = append(a.layers, l)
	log.Debug(a.logTag+"layer added", zap.String("id", l.ID()), zap.String("kind", l.Kind().String()))
	return l.ID()
}

func (a *Atlas) Layer(id string) Layer {
	for _, l := range a.layers {
		if l.ID() == id {
			return l
		}
	}
	return nil
}

func (a *Atlas) Layers() []Layer {
	out := make([]Layer, len(a.layers))
	copy(out, a.layers)
	return out
}

func (a *Atlas) RemoveLayer(id string) error {
	for i, l := range a.layers {
		if l.ID() == id {
			a.layers = append(a.layers[:i], a.layers[i+1:]...)
			return nil
		}
	}
	return ErrLayerNotFound
}

// MoveLayer repositions a layer in the z-order; index is clamped to the
// stack bounds and the relative order of the other layers is preserved.
func (a *Atlas) MoveLayer(id string, index int) error {
	from := -1
	for i, l := range a.layers {
		if l.ID() == id {
			from = i
			break
		}
	}
	if from < 0 {
		return ErrLayerNotFound
	}
	l := a.layers[from]
	a.layers = append(a.layers[:from], a.layers[from+1:]...)
	if index < 0 {
		index = 0
	}
	if index > len(a.layers) {
		index = len(a.layers)
	}
	a.layers = append(a.layers[:index], append([]Layer{l}, a.layers[index:]...)...)
	return nil
}

func (a *Atlas) ShowLayer(id string) error {
	return a.setVisible(id, true)
}

func (a *Atlas) HideLayer(id string) error {
	return a.setVisible(id, false)
}

func (a *Atlas) setVisible(id string, v bool) error {
	l := a.Layer(id)
	if l == nil {
		return ErrLayerNotFound
	}
	l.SetVisible(v)
	return nil
}

// Render draws all visible layers in z-order. A failing layer is logged
// and skipped so its siblings still render; Render itself only fails when
// the writer does.
func (a *Atlas) Render(w io.Writer) error {
	canvas := svg.New(w)
	canvas.Start(a.width, a.height)
	if a.background != "" {
		canvas.Rect(0, 0, a.width, a.height, "fill:"+a.background)
	}
	for _, l := range a.layers {
		if !l.Visible() {
			continue
		}
		canvas.Group(`data-layer="` + l.Kind().String() + `"`)
		if err := l.Render(canvas, a.proj); err != nil {
			log.Warn(a.logTag+"layer skipped",
				zap.String("id", l.ID()), zap.String("name", l.Name()),
				zap.String("kind", l.Kind().String()), zap.Error(err))
		}
		canvas.Gend()
	}
	canvas.End()
	return nil
}
