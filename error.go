package thematika

import "errors"

var (
	ErrBoundsInvalid      = errors.New("bounds are degenerate, need west < east and south < north")
	ErrBoundsAntimeridian = errors.New("bounds cross the antimeridian, split them at ±180")
	ErrBoundsOutOfRange   = errors.New("bounds exceed the ±180/±90 coordinate range")
	ErrNoProjectedPoints  = errors.New("bounds are entirely outside the projection domain")
	ErrRasterTooLarge     = errors.New("source raster exceeds the dimension guard")
	ErrEmptyRaster        = errors.New("source raster is empty")
	ErrInvalidTif         = errors.New("tif open failed")
	ErrWrongTif           = errors.New("tif has unsupported layout")
	ErrTifReadFailed      = errors.New("tif band read failed")
	ErrUnknownProjection  = errors.New("unknown projection name")
	ErrUnknownLayerKind   = errors.New("unknown layer kind")
	ErrLayerNotFound      = errors.New("no layer with that id")
	ErrNoFeatures         = errors.New("feature collection is empty")
	ErrNoFlows            = errors.New("flow list is empty")
)
