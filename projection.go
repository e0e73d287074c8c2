package thematika

import (
	"math"
)

// Projection maps a geographic coordinate in degrees to a screen-pixel
// coordinate. ok is false when the coordinate lies outside the projection
// domain, e.g. the far hemisphere of an orthographic view.
type Projection interface {
	Project(lon, lat float64) (x, y float64, ok bool)
}

// Inverter is implemented by projections with a native screen-to-geographic
// inverse. Resolvers fall back to bisection when it is absent or when the
// native answer fails validation.
type Inverter interface {
	Invert(x, y float64) (lon, lat float64, ok bool)
}

// AffinePlaceable is the capability a projection declares when its mapping
// is an axis-aligned affine transform of lon/lat. Only such projections may
// take the direct-placement raster path; the capability replaces any
// guessing from the projection's textual representation.
type AffinePlaceable interface {
	DirectPlacement() bool
}

// Outliner is implemented by domain-limited projections that can describe
// the screen-space outline of their valid domain, e.g. the horizon circle
// of an orthographic view.
type Outliner interface {
	DomainOutline(samples int) [][2]float64
}

// Equirectangular scales longitude and latitude linearly to pixels.
type Equirectangular struct {
	Scale   float64 // pixels per degree
	OriginX float64
	OriginY float64
}

func NewEquirectangular(scale, originX, originY float64) *Equirectangular {
	return &Equirectangular{Scale: scale, OriginX: originX, OriginY: originY}
}

func (p *Equirectangular) Project(lon, lat float64) (x, y float64, ok bool) {
	return p.OriginX + lon*p.Scale, p.OriginY - lat*p.Scale, true
}

func (p *Equirectangular) Invert(x, y float64) (lon, lat float64, ok bool) {
	return (x - p.OriginX) / p.Scale, (p.OriginY - y) / p.Scale, true
}

func (p *Equirectangular) DirectPlacement() bool {
	return true
}

// Mercator is the spherical Web-Mercator projection, clipped at
// ±MercatorMaxLat.
type Mercator struct {
	Scale   float64 // pixels per radian at the equator
	OriginX float64
	OriginY float64
}

func NewMercator(scale, originX, originY float64) *Mercator {
	return &Mercator{Scale: scale, OriginX: originX, OriginY: originY}
}

func (p *Mercator) Project(lon, lat float64) (x, y float64, ok bool) {
	if math.Abs(lat) > MercatorMaxLat {
		return 0, 0, false
	}
	x = p.OriginX + p.Scale*lon*degToRad
	y = p.OriginY - p.Scale*math.Log(math.Tan(math.Pi/4+lat*degToRad/2))
	return x, y, true
}

func (p *Mercator) Invert(x, y float64) (lon, lat float64, ok bool) {
	lon = (x - p.OriginX) / p.Scale / degToRad
	lat = (2*math.Atan(math.Exp((p.OriginY-y)/p.Scale)) - math.Pi/2) / degToRad
	return lon, lat, true
}

// Orthographic shows the hemisphere around a center point as seen from
// infinity. Coordinates on the far hemisphere are outside the domain.
type Orthographic struct {
	Radius    float64 // sphere radius in pixels
	CenterLon float64
	CenterLat float64
	OriginX   float64
	OriginY   float64
}

func NewOrthographic(radius, centerLon, centerLat, originX, originY float64) *Orthographic {
	return &Orthographic{
		Radius:    radius,
		CenterLon: centerLon,
		CenterLat: centerLat,
		OriginX:   originX,
		OriginY:   originY,
	}
}

func (p *Orthographic) Project(lon, lat float64) (x, y float64, ok bool) {
	lam := (lon - p.CenterLon) * degToRad
	phi := lat * degToRad
	phi0 := p.CenterLat * degToRad
	cosC := math.Sin(phi0)*math.Sin(phi) + math.Cos(phi0)*math.Cos(phi)*math.Cos(lam)
	if cosC < 0 {
		return 0, 0, false
	}
	x = p.OriginX + p.Radius*math.Cos(phi)*math.Sin(lam)
	y = p.OriginY - p.Radius*(math.Cos(phi0)*math.Sin(phi)-math.Sin(phi0)*math.Cos(phi)*math.Cos(lam))
	return x, y, true
}

func (p *Orthographic) Invert(x, y float64) (lon, lat float64, ok bool) {
	dx := (x - p.OriginX) / p.Radius
	dy := (p.OriginY - y) / p.Radius
	rho := math.Hypot(dx, dy)
	if rho > 1 {
		return 0, 0, false
	}
	if rho == 0 {
		return p.CenterLon, p.CenterLat, true
	}
	c := math.Asin(rho)
	sinC, cosC := math.Sin(c), math.Cos(c)
	phi0 := p.CenterLat * degToRad
	lat = math.Asin(cosC*math.Sin(phi0)+dy*sinC*math.Cos(phi0)/rho) / degToRad
	lon = p.CenterLon + math.Atan2(dx*sinC, rho*math.Cos(phi0)*cosC-dy*math.Sin(phi0)*sinC)/degToRad
	return lon, lat, true
}

// DomainOutline traces the horizon circle.
func (p *Orthographic) DomainOutline(samples int) [][2]float64 {
	if samples < 8 {
		samples = 8
	}
	pts := make([][2]float64, samples+1)
	for i := 0; i <= samples; i++ {
		a := 2 * math.Pi * float64(i) / float64(samples)
		pts[i] = [2]float64{p.OriginX + p.Radius*math.Cos(a), p.OriginY + p.Radius*math.Sin(a)}
	}
	return pts
}

// ConicEqualArea is the Albers projection. It exposes no native inverse, so
// screen-to-geographic resolution goes through the bisection fallback.
type ConicEqualArea struct {
	Scale     float64 // pixels per projection unit
	CenterLon float64
	CenterLat float64
	Parallel1 float64
	Parallel2 float64
	OriginX   float64
	OriginY   float64

	n, c, rho0 float64
}

func NewConicEqualArea(scale, centerLon, centerLat, parallel1, parallel2, originX, originY float64) *ConicEqualArea {
	p := &ConicEqualArea{
		Scale:     scale,
		CenterLon: centerLon,
		CenterLat: centerLat,
		Parallel1: parallel1,
		Parallel2: parallel2,
		OriginX:   originX,
		OriginY:   originY,
	}
	phi1 := parallel1 * degToRad
	phi2 := parallel2 * degToRad
	p.n = (math.Sin(phi1) + math.Sin(phi2)) / 2
	p.c = math.Cos(phi1)*math.Cos(phi1) + 2*p.n*math.Sin(phi1)
	p.rho0 = math.Sqrt(p.c-2*p.n*math.Sin(centerLat*degToRad)) / p.n
	return p
}

func (p *ConicEqualArea) Project(lon, lat float64) (x, y float64, ok bool) {
	d := p.c - 2*p.n*math.Sin(lat*degToRad)
	if d < 0 || p.n == 0 {
		return 0, 0, false
	}
	rho := math.Sqrt(d) / p.n
	theta := p.n * (lon - p.CenterLon) * degToRad
	x = p.OriginX + p.Scale*rho*math.Sin(theta)
	y = p.OriginY - p.Scale*(p.rho0-rho*math.Cos(theta))
	return x, y, true
}

// Fitted wraps a projection with a screen-space affine transform, computed
// by FitProjection so a geographic region fills a viewport. Inverse and
// placement capabilities of the wrapped projection are preserved.
type Fitted struct {
	Inner          Projection
	ScaleX, ScaleY float64
	TransX, TransY float64
}

func (p *Fitted) Project(lon, lat float64) (x, y float64, ok bool) {
	x, y, ok = p.Inner.Project(lon, lat)
	if !ok {
		return
	}
	return x*p.ScaleX + p.TransX, y*p.ScaleY + p.TransY, true
}

func (p *Fitted) Invert(x, y float64) (lon, lat float64, ok bool) {
	inv, isInv := p.Inner.(Inverter)
	if !isInv {
		return 0, 0, false
	}
	return inv.Invert((x-p.TransX)/p.ScaleX, (y-p.TransY)/p.ScaleY)
}

func (p *Fitted) DirectPlacement() bool {
	ap, isAp := p.Inner.(AffinePlaceable)
	return isAp && ap.DirectPlacement()
}

func (p *Fitted) DomainOutline(samples int) [][2]float64 {
	out, isOut := p.Inner.(Outliner)
	if !isOut {
		return nil
	}
	pts := out.DomainOutline(samples)
	for i := range pts {
		pts[i][0] = pts[i][0]*p.ScaleX + p.TransX
		pts[i][1] = pts[i][1]*p.ScaleY + p.TransY
	}
	return pts
}

// FitProjection scales and centers proj so that bounds fills a
// width×height viewport with the given padding on all sides. The aspect
// ratio of the projected region is preserved.
func FitProjection(proj Projection, bounds GeoBounds, width, height, padding float64) (*Fitted, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	minX, minY, maxX, maxY, ok := sampleExtent(bounds, proj, DefaultEdgeSamples)
	if !ok {
		return nil, ErrNoProjectedPoints
	}
	dx := maxX - minX
	dy := maxY - minY
	if dx <= 0 || dy <= 0 {
		return nil, ErrNoProjectedPoints
	}
	s := math.Min((width-2*padding)/dx, (height-2*padding)/dy)
	return &Fitted{
		Inner:  proj,
		ScaleX: s,
		ScaleY: s,
		TransX: (width - s*(minX+maxX)) / 2,
		TransY: (height - s*(minY+maxY)) / 2,
	}, nil
}
