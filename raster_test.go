package thematika

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cheekybits/is"

	svg "github.com/ajstarks/svgo/float"
)

func renderRaster(t *testing.T, layer *RasterLayer, proj Projection) string {
	t.Helper()
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(800, 400)
	if err := layer.Render(canvas, proj); err != nil {
		t.Fatal(err)
	}
	canvas.End()
	return buf.String()
}

func TestRasterLayerEmbedsDataURI(t *testing.T) {
	is := is.New(t)

	bounds := GeoBounds{West: -10, South: -10, East: 10, North: 10}
	layer, err := NewRasterLayer("relief", gradient(10, 10), bounds,
		ReprojectOptions{ForceAdvanced: true}, Style{})
	is.NoErr(err)
	layer.SetDebugMarkers(true)

	out := renderRaster(t, layer, identityFit())
	is.OK(strings.Contains(out, "<image"))
	is.OK(strings.Contains(out, "data:image/png;base64,"))
	// corner crosses from the debug markers
	is.OK(strings.Contains(out, "#ff00ff"))
}

func TestRasterLayerDirectHref(t *testing.T) {
	is := is.New(t)

	bounds := GeoBounds{West: -10, South: -10, East: 10, North: 10}
	layer, err := NewRasterLayer("relief", gradient(10, 10), bounds, ReprojectOptions{}, Style{})
	is.NoErr(err)
	layer.SetHref("relief.png")

	// affine placement reuses the original image reference untouched
	out := renderRaster(t, layer, identityFit())
	is.OK(strings.Contains(out, "relief.png"))
	is.Equal(strings.Contains(out, "base64"), false)

	// the per-pixel path re-encodes even when an href is set
	layer.opts.ForceAdvanced = true
	out = renderRaster(t, layer, identityFit())
	is.OK(strings.Contains(out, "data:image/png;base64,"))
}

func TestRasterLayerSkipsOutsideDomain(t *testing.T) {
	is := is.New(t)

	// antipodal bounds draw nothing, without failing the layer
	p := NewOrthographic(200, 0, 0, 0, 0)
	layer, err := NewRasterLayer("relief", gradient(10, 10),
		GeoBounds{West: 160, South: -10, East: 179, North: 10}, ReprojectOptions{}, Style{})
	is.NoErr(err)

	out := renderRaster(t, layer, p)
	is.Equal(strings.Contains(out, "<image"), false)
}

func TestNewRasterLayerGuards(t *testing.T) {
	is := is.New(t)

	bounds := GeoBounds{West: -10, South: -10, East: 10, North: 10}
	_, err := NewRasterLayer("x", nil, bounds, ReprojectOptions{}, Style{})
	is.Equal(err, ErrEmptyRaster)

	_, err = NewRasterLayer("x", gradient(4, 4),
		GeoBounds{West: 170, South: -10, East: -170, North: 10}, ReprojectOptions{}, Style{})
	is.Equal(err, ErrBoundsAntimeridian)
}
