package thematika

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/cheekybits/is"
)

// identityFit maps lon to x*5 and lat to -y*2.5, so the 100×50 gradient
// over [-10,10]×[-10,10] projects back onto a 100×50 pixel grid.
func identityFit() *Fitted {
	return &Fitted{Inner: NewEquirectangular(1, 0, 0), ScaleX: 5, ScaleY: 2.5}
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 2), G: uint8(y * 5), B: 100, A: 255})
		}
	}
	return img
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestReprojectFastPathIdentity(t *testing.T) {
	is := is.New(t)

	src := gradient(100, 50)
	bounds := GeoBounds{West: -10, South: -10, East: 10, North: 10}
	rr, err := Reproject(src, bounds, identityFit(), ReprojectOptions{})
	is.NoErr(err)
	is.Equal(rr.Direct, true)
	is.Equal(rr.Placement, OutputBounds{MinX: -50, MinY: -25, Width: 100, Height: 50})
	for _, p := range [][2]int{{0, 0}, {50, 25}, {99, 49}, {13, 42}} {
		want := src.NRGBAAt(p[0], p[1])
		got := rr.Image.NRGBAAt(p[0], p[1])
		is.Equal(got, want)
	}
}

func TestReprojectAdvancedIdentity(t *testing.T) {
	is := is.New(t)

	src := gradient(100, 50)
	bounds := GeoBounds{West: -10, South: -10, East: 10, North: 10}
	for _, mode := range []Resampling{ResampleNearest, ResampleBilinear} {
		rr, err := Reproject(src, bounds, identityFit(), ReprojectOptions{
			ForceAdvanced: true,
			Resampling:    mode,
		})
		is.NoErr(err)
		is.Equal(rr.Direct, false)
		is.Equal(rr.Placement, OutputBounds{MinX: -50, MinY: -25, Width: 100, Height: 50})
		for y := 0; y < 50; y += 7 {
			for x := 0; x < 100; x += 11 {
				want := src.NRGBAAt(x, y)
				got := rr.Image.NRGBAAt(x, y)
				if absDiff(got.R, want.R) > 1 || absDiff(got.G, want.G) > 1 ||
					absDiff(got.B, want.B) > 1 || absDiff(got.A, want.A) > 1 {
					t.Fatalf("%s pixel (%d,%d): got %v want %v", mode, x, y, got, want)
				}
			}
		}
	}
}

func TestReprojectGuards(t *testing.T) {
	is := is.New(t)

	bounds := GeoBounds{West: -10, South: -10, East: 10, North: 10}

	_, err := Reproject(nil, bounds, identityFit(), ReprojectOptions{})
	is.Equal(err, ErrEmptyRaster)

	big := image.NewNRGBA(image.Rect(0, 0, MaxRasterDim+1, 10))
	_, err = Reproject(big, bounds, identityFit(), ReprojectOptions{})
	is.Equal(err, ErrRasterTooLarge)

	// the guard applies to the advanced path as well
	_, err = Reproject(big, bounds, identityFit(), ReprojectOptions{ForceAdvanced: true})
	is.Equal(err, ErrRasterTooLarge)

	_, err = Reproject(gradient(10, 10), GeoBounds{West: 170, South: -10, East: -170, North: 10}, identityFit(), ReprojectOptions{})
	is.Equal(err, ErrBoundsAntimeridian)
}

func TestReprojectOutsideDomainSkips(t *testing.T) {
	is := is.New(t)

	p := NewOrthographic(200, 0, 0, 0, 0)
	_, err := Reproject(gradient(10, 10), GeoBounds{West: 160, South: -10, East: 179, North: 10}, p, ReprojectOptions{})
	is.Equal(err, ErrNoProjectedPoints)
}

func TestReprojectCurvedProjection(t *testing.T) {
	is := is.New(t)

	src := gradient(60, 60)
	bounds := GeoBounds{West: -30, South: 10, East: 30, North: 60}
	p := NewConicEqualArea(300, 0, 35, 20, 50, 0, 0)
	rr, err := Reproject(src, bounds, p, ReprojectOptions{Resampling: ResampleBilinear, Mask: true})
	is.NoErr(err)
	is.Equal(rr.Direct, false)
	is.Equal(rr.Placement.Empty(), false)

	// the center of the region must carry source color, not transparency
	cx := rr.Placement.Width / 2
	cy := rr.Placement.Height / 2
	is.OK(rr.Image.NRGBAAt(cx, cy).A != 0)
}

func TestDataURI(t *testing.T) {
	is := is.New(t)

	rr := &ReprojectedRaster{Image: gradient(4, 4)}
	uri, err := rr.DataURI()
	is.NoErr(err)
	is.OK(strings.HasPrefix(uri, "data:image/png;base64,"))
}
