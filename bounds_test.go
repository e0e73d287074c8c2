package thematika

import (
	"testing"

	"github.com/cheekybits/is"
)

func TestProjectedBoundsInDomain(t *testing.T) {
	is := is.New(t)

	bounds := GeoBounds{West: -10, South: -10, East: 10, North: 10}
	out, err := ProjectedBounds(bounds, NewEquirectangular(5, 0, 0), 0)
	is.NoErr(err)
	is.Equal(out.Empty(), false)
	is.Equal(out.MinX, -50)
	is.Equal(out.MinY, -50)
	is.Equal(out.Width, 100)
	is.Equal(out.Height, 100)
}

func TestProjectedBoundsOutsideDomain(t *testing.T) {
	is := is.New(t)

	// the antipode of an orthographic center projects nowhere
	p := NewOrthographic(200, 0, 0, 0, 0)
	_, err := ProjectedBounds(GeoBounds{West: 160, South: -10, East: 179, North: 10}, p, 0)
	is.Equal(err, ErrNoProjectedPoints)
}

func TestProjectedBoundsRejectsBadBoxes(t *testing.T) {
	is := is.New(t)

	p := NewEquirectangular(1, 0, 0)
	_, err := ProjectedBounds(GeoBounds{West: 170, South: -10, East: -170, North: 10}, p, 0)
	is.Equal(err, ErrBoundsAntimeridian)
	_, err = ProjectedBounds(GeoBounds{West: 10, South: -10, East: 10, North: 10}, p, 0)
	is.Equal(err, ErrBoundsInvalid)
}

func TestProjectedBoundsPartialDomain(t *testing.T) {
	is := is.New(t)

	// a box straddling the horizon still yields a usable extent from the
	// visible part
	p := NewOrthographic(200, 0, 0, 0, 0)
	out, err := ProjectedBounds(GeoBounds{West: 60, South: -10, East: 120, North: 10}, p, 0)
	is.NoErr(err)
	is.Equal(out.Empty(), false)
}
