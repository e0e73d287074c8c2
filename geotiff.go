package thematika

import (
	"image"

	"github.com/shimizu/thematika/log"

	gdal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// GeoRaster is a decoded, georeferenced source raster: pixels plus the
// geographic bounding box they cover.
type GeoRaster struct {
	Image  *image.NRGBA
	Bounds GeoBounds
}

// LoadGeoTIFF reads a byte-typed GeoTIFF into an RGBA buffer and derives
// its geographic bounds from the geotransform. Gray, RGB and RGBA band
// layouts are supported.
func LoadGeoTIFF(tif string) (ras *GeoRaster, err error) {
	const logTag = "GeoTIFF:"
	sds, err := gdal.Open(tif, gdal.RasterOnly())
	if err != nil {
		log.Error(logTag+"open tif failed", zap.String("path", tif), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer sds.Close()
	tifBands := sds.Bands()
	bc := len(tifBands)
	if bc != 1 && bc != 3 && bc != 4 {
		log.Error(logTag+"unsupported band count", zap.Int("bands", bc))
		err = ErrWrongTif
		return
	}
	bandStruct := tifBands[0].Structure()
	if bandStruct.DataType != gdal.Byte {
		log.Error(logTag+"unsupported data type", zap.String("dataType", bandStruct.DataType.String()))
		err = ErrWrongTif
		return
	}
	x := bandStruct.SizeX
	y := bandStruct.SizeY
	log.Info(logTag+"read tif", zap.Int("bands", bc), zap.Int("width", x), zap.Int("height", y))
	buf := make([][]byte, bc)
	for i := 0; i < bc; i++ {
		buf[i] = make([]byte, x*y)
		if err = tifBands[i].IO(gdal.IORead, 0, 0, buf[i], x, y); err != nil {
			log.Error(logTag+"read tif band failed", zap.Int("band", i), zap.Error(err))
			err = ErrTifReadFailed
			return
		}
	}
	gt, err := sds.GeoTransform()
	if err != nil {
		log.Error(logTag+"missing geotransform", zap.Error(err))
		err = ErrWrongTif
		return
	}
	bounds := GeoBounds{
		West:  gt[0],
		North: gt[3],
		East:  gt[0] + gt[1]*float64(x),
		South: gt[3] + gt[5]*float64(y),
	}
	if e := bounds.Validate(); e != nil {
		log.Error(logTag+"bad geotransform bounds", zap.Error(e))
		err = ErrWrongTif
		return
	}
	img := image.NewNRGBA(image.Rect(0, 0, x, y))
	for j := 0; j < y; j++ {
		for i := 0; i < x; i++ {
			o := j*x + i
			d := img.PixOffset(i, j)
			switch bc {
			case 1:
				img.Pix[d] = buf[0][o]
				img.Pix[d+1] = buf[0][o]
				img.Pix[d+2] = buf[0][o]
				img.Pix[d+3] = 0xff
			case 3:
				img.Pix[d] = buf[0][o]
				img.Pix[d+1] = buf[1][o]
				img.Pix[d+2] = buf[2][o]
				img.Pix[d+3] = 0xff
			default:
				img.Pix[d] = buf[0][o]
				img.Pix[d+1] = buf[1][o]
				img.Pix[d+2] = buf[2][o]
				img.Pix[d+3] = buf[3][o]
			}
		}
	}
	ras = &GeoRaster{Image: img, Bounds: bounds}
	return
}
