package thematika

import (
	"math"
)

// inverseResolver recovers the geographic coordinate that projects to a
// given screen pixel, restricted to a known bounding box. The native
// inverse is used when the projection provides one and its answer survives
// the bounding-box check; otherwise a bisection search over the lon/lat
// intervals runs for a fixed iteration budget and returns its best
// midpoint. Convergence is not guaranteed for strongly distorted
// projections, the approximation is accepted silently.
type inverseResolver struct {
	proj       Projection
	inv        Inverter
	bounds     GeoBounds
	iterations int
	tolerance  float64
}

func newInverseResolver(proj Projection, bounds GeoBounds, iterations int, tolerance float64) *inverseResolver {
	if iterations <= 0 {
		iterations = DefaultInverseIterations
	}
	if tolerance <= 0 {
		tolerance = DefaultPixelTolerance
	}
	inv, _ := proj.(Inverter)
	return &inverseResolver{
		proj:       proj,
		inv:        inv,
		bounds:     bounds,
		iterations: iterations,
		tolerance:  tolerance,
	}
}

func (r *inverseResolver) resolve(x, y float64) (lon, lat float64, ok bool) {
	if r.inv != nil {
		lon, lat, ok = r.inv.Invert(x, y)
		// native inverses can return mathematically valid answers outside
		// the region, e.g. the mirrored hemisphere of an ambiguous
		// projection; those fall through to the search
		if ok && r.bounds.Contains(lon, lat) {
			return lon, lat, true
		}
	}
	return r.bisect(x, y)
}

// bisect narrows independent longitude and latitude intervals, at each step
// keeping the half whose midpoint projects closer to the target pixel.
func (r *inverseResolver) bisect(x, y float64) (lon, lat float64, ok bool) {
	lonLo, lonHi := r.bounds.West, r.bounds.East
	latLo, latHi := r.bounds.South, r.bounds.North

	dist := func(qLon, qLat float64) float64 {
		px, py, hit := r.proj.Project(qLon, qLat)
		if !hit {
			return math.Inf(1)
		}
		return math.Hypot(px-x, py-y)
	}

	for i := 0; i < r.iterations; i++ {
		lonMid := (lonLo + lonHi) / 2
		latMid := (latLo + latHi) / 2
		if dist(lonMid, latMid) <= r.tolerance {
			return lonMid, latMid, true
		}
		if dist((lonLo+lonMid)/2, latMid) <= dist((lonMid+lonHi)/2, latMid) {
			lonHi = lonMid
		} else {
			lonLo = lonMid
		}
		lonMid = (lonLo + lonHi) / 2
		if dist(lonMid, (latLo+latMid)/2) <= dist(lonMid, (latMid+latHi)/2) {
			latHi = latMid
		} else {
			latLo = latMid
		}
	}
	lon = (lonLo + lonHi) / 2
	lat = (latLo + latHi) / 2
	// best effort after budget exhaustion; only a coordinate the projection
	// rejects outright is reported as unresolvable
	if _, _, hit := r.proj.Project(lon, lat); !hit {
		return 0, 0, false
	}
	return lon, lat, true
}
