package thematika

const (
	FILE_EXT_JSON    = ".json"
	FILE_EXT_GEOJSON = ".geojson"
	FILE_EXT_TIF     = ".tif"
	FILE_EXT_SVG     = ".svg"

	// boundary sampler subdivisions per bounding-box edge
	DefaultEdgeSamples = 40

	// inverse-projection bisection fallback
	DefaultInverseIterations = 20
	DefaultPixelTolerance    = 0.5

	// pixel dimension guard, enforced on both reprojection paths
	MaxRasterDim = 1000

	// forward-verification mask cutoff, in screen pixels
	DefaultMaskTolerance = 2.0

	DefaultGraticuleStep   = 10.0
	DefaultGraticulePrecis = 1.0

	DefaultFlowSegments     = 64
	DefaultBundleIterations = 60
	DefaultBundleStiffness  = 0.1

	DefaultDeclutterDist   = 12.0
	DefaultSymbolMaxRadius = 24.0

	coordDecimals = 2
)
