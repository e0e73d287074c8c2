package thematika

import (
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/shimizu/thematika/log"
	"github.com/shimizu/thematika/utils"

	svg "github.com/ajstarks/svgo/float"
	"go.uber.org/zap"
)

var defaultRasterStyle = Style{Opacity: 1}

// RasterLayer places a georeferenced image under the Atlas projection.
// Affine-placeable projections place the image directly; everything else
// goes through per-pixel reprojection and embeds the result as a PNG data
// URI.
type RasterLayer struct {
	baseLayer
	source       image.Image
	bounds       GeoBounds
	opts         ReprojectOptions
	href         string
	debugMarkers bool
}

func NewRasterLayer(name string, src image.Image, bounds GeoBounds, opts ReprojectOptions, style Style) (*RasterLayer, error) {
	if src == nil {
		return nil, ErrEmptyRaster
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	return &RasterLayer{
		baseLayer: newBaseLayer(KindRaster, name, style, defaultRasterStyle),
		source:    src,
		bounds:    bounds,
		opts:      opts,
	}, nil
}

// NewRasterLayerFromFile decodes PNG/JPEG/GIF images, or GeoTIFFs when the
// path has a .tif extension. A GeoTIFF supplies its own bounds when the
// zero GeoBounds is passed.
func NewRasterLayerFromFile(name, path string, bounds GeoBounds, opts ReprojectOptions, style Style) (*RasterLayer, error) {
	if utils.HasExt(path, FILE_EXT_TIF, ".tiff") {
		ras, err := LoadGeoTIFF(path)
		if err != nil {
			return nil, err
		}
		if (bounds == GeoBounds{}) {
			bounds = ras.Bounds
		}
		return NewRasterLayer(name, ras.Image, bounds, opts, style)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return NewRasterLayer(name, img, bounds, opts, style)
}

// SetHref keeps a reference to the original image location; the direct
// placement path emits it instead of re-encoding pixels.
func (l *RasterLayer) SetHref(href string) {
	l.href = href
}

// SetDebugMarkers draws crosses at the projected corners of the bounds.
func (l *RasterLayer) SetDebugMarkers(enabled bool) {
	l.debugMarkers = enabled
}

func (l *RasterLayer) Render(canvas *svg.SVG, proj Projection) error {
	rr, err := Reproject(l.source, l.bounds, proj, l.opts)
	if errors.Is(err, ErrNoProjectedPoints) {
		log.Warn(l.logTag+"bounds outside projection domain, nothing to draw", zap.String("name", l.name))
		return nil
	}
	if err != nil {
		return err
	}
	href := l.href
	if !rr.Direct || href == "" {
		if href, err = rr.DataURI(); err != nil {
			return err
		}
	}
	var attrs []string
	if l.style.Opacity != 1 {
		attrs = append(attrs, "opacity:"+utils.Ftoa(l.style.Opacity, 3))
	}
	canvas.Image(float64(rr.Placement.MinX), float64(rr.Placement.MinY),
		rr.Placement.Width, rr.Placement.Height, href, attrs...)
	if l.debugMarkers {
		l.drawMarkers(canvas, proj)
	}
	return nil
}

func (l *RasterLayer) drawMarkers(canvas *svg.SVG, proj Projection) {
	corners := [][2]float64{
		{l.bounds.West, l.bounds.North},
		{l.bounds.East, l.bounds.North},
		{l.bounds.East, l.bounds.South},
		{l.bounds.West, l.bounds.South},
	}
	for _, c := range corners {
		x, y, ok := proj.Project(c[0], c[1])
		if !ok {
			continue
		}
		canvas.Line(x-4, y, x+4, y, "stroke:#ff00ff;stroke-width:1")
		canvas.Line(x, y-4, x, y+4, "stroke:#ff00ff;stroke-width:1")
	}
}
