package thematika

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const (
	degToRad = math.Pi / 180

	xr = 20037508.34 / 180
	yr = xr / degToRad
	tr = degToRad / 2

	// largest latitude representable in Web Mercator
	MercatorMaxLat = 85.051129
)

// GeoBounds is a geographic bounding box in degrees. Coordinates must lie
// within [-180,180]×[-90,90] with West < East and South < North; boxes
// crossing the antimeridian are rejected rather than silently mishandled,
// split them at ±180 before use.
type GeoBounds struct {
	West  float64 `yaml:"west"`
	South float64 `yaml:"south"`
	East  float64 `yaml:"east"`
	North float64 `yaml:"north"`
}

func (b GeoBounds) Validate() error {
	if b.West < -180 || b.East > 180 || b.South < -90 || b.North > 90 {
		return ErrBoundsOutOfRange
	}
	if b.West >= b.East {
		if b.West > b.East {
			return ErrBoundsAntimeridian
		}
		return ErrBoundsInvalid
	}
	if b.South >= b.North {
		return ErrBoundsInvalid
	}
	return nil
}

func (b GeoBounds) Width() float64 {
	return b.East - b.West
}

func (b GeoBounds) Height() float64 {
	return b.North - b.South
}

func (b GeoBounds) Center() (lon, lat float64) {
	return (b.West + b.East) / 2, (b.South + b.North) / 2
}

func (b GeoBounds) Contains(lon, lat float64) bool {
	return lon >= b.West && lon <= b.East && lat >= b.South && lat <= b.North
}

// BoundsOfGeometry returns the geographic bounding box of an orb geometry.
func BoundsOfGeometry(g orb.Geometry) GeoBounds {
	bound := g.Bound()
	return GeoBounds{
		West:  bound.Min[0],
		South: bound.Min[1],
		East:  bound.Max[0],
		North: bound.Max[1],
	}
}

// Centroid returns the area (or length, or point) weighted centroid of an
// orb geometry in degrees.
func Centroid(g orb.Geometry) (lon, lat float64) {
	c, _ := planar.CentroidArea(g)
	return c[0], c[1]
}

func Convert4326To3857(lon, lat float64) (lonIn3857, latIn3857 float64) {
	lonIn3857 = lon * xr
	latIn3857 = math.Log(math.Tan((90+lat)*tr)) * yr
	return
}

func Convert3857To4326(lonIn3857, latIn3857 float64) (lon, lat float64) {
	lon = lonIn3857 / xr
	lat = math.Atan(math.Pow(math.E, latIn3857/yr))/tr - 90
	return
}

// TileToBounds converts Web-Mercator tile coordinates to the geographic
// bounding box the tile covers.
func TileToBounds(zoom, x, y int) GeoBounds {
	n := math.Exp2(float64(zoom))
	return GeoBounds{
		West:  float64(x)/n*360 - 180,
		East:  float64(x+1)/n*360 - 180,
		North: mercatorToLat(math.Pi * (1 - 2*float64(y)/n)),
		South: mercatorToLat(math.Pi * (1 - 2*float64(y+1)/n)),
	}
}

// LonLatToTile returns the Web-Mercator tile containing a coordinate.
func LonLatToTile(lon, lat float64, zoom int) (x, y int) {
	n := math.Exp2(float64(zoom))
	x = int((lon + 180) / 360 * n)
	latRad := lat * degToRad
	y = int((1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n)
	return
}

func mercatorToLat(mercY float64) float64 {
	return math.Atan(math.Sinh(mercY)) / degToRad
}
