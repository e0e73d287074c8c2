package thematika

import (
	"image"
	"image/color"
	"math"
)

// Resampling selects how source pixels are read at fractional coordinates.
type Resampling int

const (
	// ResampleNearest rounds to the nearest source pixel. Out-of-bounds
	// coordinates read as transparent black.
	ResampleNearest Resampling = iota
	// ResampleBilinear blends the four surrounding pixels per channel,
	// clamping neighbors at the source edges. It reduces exactly to
	// nearest-neighbor when the coordinate lands on an integer pixel.
	ResampleBilinear
)

func (r Resampling) String() string {
	if r == ResampleBilinear {
		return "bilinear"
	}
	return "nearest"
}

// sample reads an RGBA color at a fractional source-pixel coordinate.
func sample(src *image.NRGBA, fx, fy float64, mode Resampling) color.NRGBA {
	if mode == ResampleBilinear {
		return sampleBilinear(src, fx, fy)
	}
	return sampleNearest(src, fx, fy)
}

func sampleNearest(src *image.NRGBA, fx, fy float64) color.NRGBA {
	b := src.Bounds()
	x := int(math.Round(fx))
	y := int(math.Round(fy))
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return color.NRGBA{}
	}
	return src.NRGBAAt(b.Min.X+x, b.Min.Y+y)
}

func sampleBilinear(src *image.NRGBA, fx, fy float64) color.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if fx < -0.5 || fy < -0.5 || fx > float64(w)-0.5 || fy > float64(h)-0.5 {
		return color.NRGBA{}
	}
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00 := src.NRGBAAt(b.Min.X+clampInt(x0, 0, w-1), b.Min.Y+clampInt(y0, 0, h-1))
	c10 := src.NRGBAAt(b.Min.X+clampInt(x0+1, 0, w-1), b.Min.Y+clampInt(y0, 0, h-1))
	c01 := src.NRGBAAt(b.Min.X+clampInt(x0, 0, w-1), b.Min.Y+clampInt(y0+1, 0, h-1))
	c11 := src.NRGBAAt(b.Min.X+clampInt(x0+1, 0, w-1), b.Min.Y+clampInt(y0+1, 0, h-1))

	blend := func(a, b, c, d uint8) uint8 {
		top := float64(a)*(1-tx) + float64(b)*tx
		bot := float64(c)*(1-tx) + float64(d)*tx
		return uint8(math.Round(top*(1-ty) + bot*ty))
	}
	return color.NRGBA{
		R: blend(c00.R, c10.R, c01.R, c11.R),
		G: blend(c00.G, c10.G, c01.G, c11.G),
		B: blend(c00.B, c10.B, c01.B, c11.B),
		A: blend(c00.A, c10.A, c01.A, c11.A),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// toNRGBA normalizes any decoded image into the buffer layout the
// resamplers read.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Set(x, y, color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return dst
}
