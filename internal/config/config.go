package config

// Scene timing
const (
	FPS        = 30
	FrameStart = 1
)

// Audio analysis settings
const (
	FFTSize = 2048
)

// Bar defaults
const (
	BarCount  = 64
	BarShape  = "RECTANGLE"
	BarWidth  = 0.1
	BarDepth  = 0.1
	Amplitude = 12.0
	Spacing   = 0.1
)

// Radial layout defaults
const (
	Radius          = 5.0
	ArcAngle        = 360.0 // degrees
	ArcCenterOffset = 0.0   // degrees
)

// Sound bake envelope (seconds)
const (
	AttackTime  = 0.005
	ReleaseTime = 0.2
)

// Appearance
const (
	ColorStyle            = "SINGLE_COLOR"
	ColorCount            = 2
	ColorPattern          = "12"
	GradientInterpolation = "RGB"
	EmissionStrength      = 1.0

	// CustomName prefixes every generated object. Regeneration removes
	// objects starting with it.
	CustomName = "bz_bar"
)

// DefaultColors fill the nine palette slots. Slot one is the single-colour
// default: Linux Matters red.
var DefaultColors = [9]string{
	"#A40000", // red
	"#F8B31D", // brand yellow
	"#FF8C00", // orange
	"#DC143C", // crimson
	"#FFD700", // gold
	"#1E90FF", // blue
	"#8A2BE2", // violet
	"#00CED1", // turquoise
	"#FFFFFF", // white
}

// Environment
const (
	// EnvConfigFile names a YAML settings file used when none is given.
	EnvConfigFile = "JIVEBARS_CONFIG"
	// EnvVerbose enables debug logging when set to a true value.
	EnvVerbose = "JIVEBARS_VERBOSE"
)

// Preview image
const (
	PreviewWidth    = 1280
	PreviewHeight   = 720
	PreviewMargin   = 30
	PreviewFontSize = 36
)
