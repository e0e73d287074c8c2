package thematika

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"math"
	"runtime"

	"github.com/shimizu/thematika/log"
	"github.com/shimizu/thematika/utils"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// ReprojectOptions tunes one reprojection call. Zero values pick the
// package defaults, so the empty struct is a valid configuration.
type ReprojectOptions struct {
	Resampling        Resampling
	EdgeSamples       int     // boundary sampler subdivisions per edge
	InverseIterations int     // bisection budget of the inverse fallback
	PixelTolerance    float64 // bisection acceptance distance, pixels
	MaskTolerance     float64 // forward-verification cutoff, pixels
	Mask              bool    // suppress antipodal-seam artifacts
	ForceAdvanced     bool    // skip the direct-placement fast path
	Workers           int     // row-parallel workers, 0 means GOMAXPROCS
}

func (o *ReprojectOptions) withDefaults() ReprojectOptions {
	r := *o
	if r.EdgeSamples <= 0 {
		r.EdgeSamples = DefaultEdgeSamples
	}
	if r.InverseIterations <= 0 {
		r.InverseIterations = DefaultInverseIterations
	}
	if r.PixelTolerance <= 0 {
		r.PixelTolerance = DefaultPixelTolerance
	}
	if r.MaskTolerance <= 0 {
		r.MaskTolerance = DefaultMaskTolerance
	}
	if r.Workers <= 0 {
		r.Workers = runtime.GOMAXPROCS(0)
	}
	return r
}

// ReprojectedRaster is a finished reprojection: the output pixels plus the
// screen rectangle they occupy. Direct marks the affine fast path, where
// the unmodified source may be placed with the same rectangle instead of
// the resampled copy.
type ReprojectedRaster struct {
	Image     *image.NRGBA
	Placement OutputBounds
	Direct    bool
}

// DataURI encodes the output raster as a base64 PNG data URI for embedding
// in an SVG image element.
func (r *ReprojectedRaster) DataURI() (string, error) {
	var buf bytes.Buffer
	buf.WriteString("data:image/png;base64,")
	enc := base64.NewEncoder(base64.StdEncoding, &buf)
	if err := png.Encode(enc, r.Image); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return utils.B2S(buf.Bytes()), nil
}

// Reproject resamples a source raster covering a geographic bounding box
// into the pixel grid implied by a projection. Projections declaring the
// AffinePlaceable capability take a scale-and-place fast path; everything
// else goes through per-pixel inverse projection. The source dimension
// guard applies to both paths.
func Reproject(src image.Image, bounds GeoBounds, proj Projection, opts ReprojectOptions) (*ReprojectedRaster, error) {
	const logTag = "Reproject:"
	if src == nil {
		return nil, ErrEmptyRaster
	}
	sb := src.Bounds()
	srcW, srcH := sb.Dx(), sb.Dy()
	if srcW == 0 || srcH == 0 {
		return nil, ErrEmptyRaster
	}
	if srcW > MaxRasterDim || srcH > MaxRasterDim {
		log.Error(logTag+"source too large", zap.Int("width", srcW), zap.Int("height", srcH), zap.Int("max", MaxRasterDim))
		return nil, ErrRasterTooLarge
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	out, err := ProjectedBounds(bounds, proj, opts.EdgeSamples)
	if err != nil {
		return nil, err
	}

	if ap, ok := proj.(AffinePlaceable); ok && ap.DirectPlacement() && !opts.ForceAdvanced {
		log.Debug(logTag+"direct placement", zap.Int("width", out.Width), zap.Int("height", out.Height))
		dst := image.NewNRGBA(image.Rect(0, 0, out.Width, out.Height))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
		return &ReprojectedRaster{Image: dst, Placement: out, Direct: true}, nil
	}

	source := toNRGBA(src)
	dst := image.NewNRGBA(image.Rect(0, 0, out.Width, out.Height))
	log.Debug(logTag+"per-pixel pass",
		zap.Int("width", out.Width), zap.Int("height", out.Height),
		zap.String("resampling", opts.Resampling.String()), zap.Int("workers", opts.Workers))

	lonSpan := bounds.Width()
	latSpan := bounds.Height()
	var eg errgroup.Group
	eg.SetLimit(opts.Workers)
	for row := 0; row < out.Height; row++ {
		j := row
		eg.Go(func() error {
			r := newInverseResolver(proj, bounds, opts.InverseIterations, opts.PixelTolerance)
			sy := float64(out.MinY+j) + 0.5
			for i := 0; i < out.Width; i++ {
				sx := float64(out.MinX+i) + 0.5
				lon, lat, ok := r.resolve(sx, sy)
				if !ok {
					continue
				}
				if opts.Mask && !insideMask(proj, lon, lat, sx, sy, opts.MaskTolerance) {
					continue
				}
				fx := (lon-bounds.West)/lonSpan*float64(srcW) - 0.5
				fy := (bounds.North-lat)/latSpan*float64(srcH) - 0.5
				dst.SetNRGBA(i, j, sample(source, fx, fy, opts.Resampling))
			}
			return nil
		})
	}
	// row workers only write disjoint rows and never fail
	_ = eg.Wait()

	return &ReprojectedRaster{Image: dst, Placement: out}, nil
}

// insideMask verifies that the resolved coordinate really projects back to
// the target pixel. Near antipodal seams the resolver returns in-box
// coordinates whose forward projection lands far away; rejecting them here
// plays the role of the valid-domain mask.
func insideMask(proj Projection, lon, lat, x, y, tolerance float64) bool {
	px, py, ok := proj.Project(lon, lat)
	return ok && math.Hypot(px-x, py-y) <= tolerance
}
