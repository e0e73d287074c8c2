package thematika

import (
	"math"
)

// OutputBounds is the integer screen-pixel rectangle a projected region
// occupies, used to size and place an output raster.
type OutputBounds struct {
	MinX   int
	MinY   int
	Width  int
	Height int
}

func (b OutputBounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// ProjectedBounds estimates the screen rectangle covered by a geographic
// bounding box under a projection, by projecting a dense sample of edge and
// interior points and taking the extremes of the survivors. samples is the
// number of subdivisions per box edge; zero picks DefaultEdgeSamples.
// ErrNoProjectedPoints is returned when every sample falls outside the
// projection domain, the caller then skips rendering instead of rasterizing
// into a degenerate size.
func ProjectedBounds(bounds GeoBounds, proj Projection, samples int) (OutputBounds, error) {
	if err := bounds.Validate(); err != nil {
		return OutputBounds{}, err
	}
	minX, minY, maxX, maxY, ok := sampleExtent(bounds, proj, samples)
	if !ok {
		return OutputBounds{}, ErrNoProjectedPoints
	}
	out := OutputBounds{
		MinX: int(math.Floor(minX)),
		MinY: int(math.Floor(minY)),
	}
	out.Width = int(math.Ceil(maxX)) - out.MinX
	out.Height = int(math.Ceil(maxY)) - out.MinY
	if out.Width < 1 {
		out.Width = 1
	}
	if out.Height < 1 {
		out.Height = 1
	}
	return out, nil
}

// sampleExtent scans the box edges plus an interior grid and returns the
// float extent of the surviving projections.
func sampleExtent(bounds GeoBounds, proj Projection, samples int) (minX, minY, maxX, maxY float64, ok bool) {
	if samples <= 0 {
		samples = DefaultEdgeSamples
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	take := func(lon, lat float64) {
		x, y, hit := proj.Project(lon, lat)
		if !hit {
			return
		}
		ok = true
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	dLon := bounds.Width() / float64(samples)
	dLat := bounds.Height() / float64(samples)
	for i := 0; i <= samples; i++ {
		lon := bounds.West + float64(i)*dLon
		lat := bounds.South + float64(i)*dLat
		take(lon, bounds.South)
		take(lon, bounds.North)
		take(bounds.West, lat)
		take(bounds.East, lat)
	}
	// interior grid, coarser than the edges; catches projections whose
	// extreme points are not on the box boundary
	inner := samples / 4
	if inner < 2 {
		inner = 2
	}
	for i := 1; i < inner; i++ {
		for j := 1; j < inner; j++ {
			take(bounds.West+bounds.Width()*float64(i)/float64(inner),
				bounds.South+bounds.Height()*float64(j)/float64(inner))
		}
	}
	return
}
