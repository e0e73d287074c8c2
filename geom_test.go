package thematika

import (
	"math"
	"testing"

	"github.com/cheekybits/is"
)

func TestBoundsValidate(t *testing.T) {
	is := is.New(t)

	is.NoErr(GeoBounds{West: -10, South: -10, East: 10, North: 10}.Validate())
	is.Equal(GeoBounds{West: 10, South: -10, East: 10, North: 10}.Validate(), ErrBoundsInvalid)
	is.Equal(GeoBounds{West: -10, South: 10, East: 10, North: 10}.Validate(), ErrBoundsInvalid)

	// antimeridian-crossing boxes fail fast instead of wrapping
	is.Equal(GeoBounds{West: 170, South: -10, East: -170, North: 10}.Validate(), ErrBoundsAntimeridian)

	// coordinates outside the lon/lat value range are not a wrap either
	is.Equal(GeoBounds{West: -200, South: -10, East: -190, North: 10}.Validate(), ErrBoundsOutOfRange)
	is.Equal(GeoBounds{West: 150, South: -10, East: 190, North: 10}.Validate(), ErrBoundsOutOfRange)
	is.Equal(GeoBounds{West: -10, South: -95, East: 10, North: 10}.Validate(), ErrBoundsOutOfRange)
	is.Equal(GeoBounds{West: -10, South: -10, East: 10, North: 95}.Validate(), ErrBoundsOutOfRange)
}

func TestBoundsAccessors(t *testing.T) {
	is := is.New(t)

	b := GeoBounds{West: -10, South: 20, East: 30, North: 40}
	is.Equal(b.Width(), 40.0)
	is.Equal(b.Height(), 20.0)
	lon, lat := b.Center()
	is.Equal(lon, 10.0)
	is.Equal(lat, 30.0)
	is.Equal(b.Contains(0, 30), true)
	is.Equal(b.Contains(-11, 30), false)
}

func TestWebMercatorRoundTrip(t *testing.T) {
	is := is.New(t)

	lon, lat := 113.695688629, 29.971802123
	x, y := Convert4326To3857(lon, lat)
	lon2, lat2 := Convert3857To4326(x, y)
	is.OK(math.Abs(lon-lon2) < 1e-6)
	is.OK(math.Abs(lat-lat2) < 1e-6)
}

func TestTileMath(t *testing.T) {
	is := is.New(t)

	b := TileToBounds(0, 0, 0)
	is.Equal(b.West, -180.0)
	is.Equal(b.East, 180.0)
	is.OK(math.Abs(b.North-85.051129) < 1e-3)
	is.OK(math.Abs(b.South+85.051129) < 1e-3)

	x, y := LonLatToTile(0, 0, 1)
	is.Equal(x, 1)
	is.Equal(y, 1)

	// the tile containing a coordinate covers it
	x4, y4 := LonLatToTile(13.4, 52.5, 4)
	cb := TileToBounds(4, x4, y4)
	is.Equal(cb.Contains(13.4, 52.5), true)
}
