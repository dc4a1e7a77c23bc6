package layout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// BaseSize is the edge length of the mesh templates. Bar width, depth and
// amplitude are divided by it to get object scale.
const BaseSize = 2.0

// ErrInvalidBarCount is returned when no bar would be generated.
var ErrInvalidBarCount = errors.New("bar count must be positive")

// Config describes how bars are arranged.
type Config struct {
	BarCount  int
	Spacing   float64 // gap between neighbouring bars
	Width     float64
	Depth     float64
	Amplitude float64
	Shape     Shape

	Radial          bool
	Radius          float64
	ArcAngle        float64 // degrees
	ArcCenterOffset float64 // degrees
	FlipDirection   bool

	// Symmetry generates half the bars; the other half is mirrored by the host.
	Symmetry bool
	// Preview replaces audio-driven animation with a static wave.
	Preview bool
}

// Transform is an object's location, rotation about the vertical axis and scale.
type Transform struct {
	Location  Vec3
	RotationZ float64 // radians
	Scale     Vec3
}

// Engine computes per-bar transforms for a Config.
type Engine struct {
	cfg   Config
	count int

	width     float64
	depth     float64
	amplitude float64
	spacing   float64
	lineStart float64

	arcAngle     float64
	arcDirection float64
	arcStart     float64

	previewCoef float64
	digits      int
}

// NewEngine derives the layout constants for cfg.
func NewEngine(cfg Config) (*Engine, error) {
	count := cfg.BarCount
	if cfg.Symmetry {
		// Python-style round: halves go to the even neighbour.
		count = int(math.RoundToEven(float64(cfg.BarCount) / 2))
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBarCount, cfg.BarCount)
	}

	e := &Engine{
		cfg:       cfg,
		count:     count,
		width:     cfg.Width / BaseSize,
		depth:     cfg.Depth / BaseSize,
		amplitude: cfg.Amplitude / BaseSize,
		spacing:   cfg.Spacing + cfg.Width,
		digits:    len(strconv.Itoa(count)),
	}

	e.lineStart = -(float64(count)*e.spacing)/2 + e.spacing/2
	e.previewCoef = 8 * math.Pi / float64(count)

	e.arcDirection = -1
	if cfg.FlipDirection {
		e.arcDirection = 1
	}
	e.arcAngle = cfg.ArcAngle / 360 * 2 * math.Pi
	arcCenter := -cfg.ArcCenterOffset / 360 * 2 * math.Pi
	e.arcStart = arcCenter - e.arcDirection*e.arcAngle/2

	return e, nil
}

// Count is the number of bars generated, after symmetry halving.
func (e *Engine) Count() int { return e.count }

// Spacing is the centre-to-centre distance of bars in linear mode.
func (e *Engine) Spacing() float64 { return e.spacing }

// Config returns the configuration the engine was built from.
func (e *Engine) Config() Config { return e.cfg }

// Angle returns the arc angle of bar i in radians.
func (e *Engine) Angle(i int) float64 {
	denom := float64(e.count)
	if e.cfg.Symmetry {
		denom = float64(e.count * 2)
	}
	return e.arcStart + e.arcDirection*((float64(i)+0.5)/denom)*e.arcAngle
}

// Place returns the transform of bar i.
func (e *Engine) Place(i int) Transform {
	var t Transform

	if e.cfg.Radial {
		angle := e.Angle(i)
		t.RotationZ = angle
		t.Location = Vec3{-math.Sin(angle) * e.cfg.Radius, math.Cos(angle) * e.cfg.Radius, 0}
	} else {
		t.Location = Vec3{float64(i)*e.spacing + e.lineStart, 0, 0}
	}

	t.Scale = Vec3{e.width, e.amplitude, e.depth}
	if e.cfg.Preview {
		t.Scale[1] = e.PreviewAmplitude(i)
	}
	return t
}

// PreviewAmplitude is the static stand-in for audio used in preview mode.
func (e *Engine) PreviewAmplitude(i int) float64 {
	return e.amplitude * (math.Cos(float64(i)*e.previewCoef) + 1.2) / 2.2
}

// Layout returns the transforms of every bar in index order.
func (e *Engine) Layout() []Transform {
	out := make([]Transform, e.count)
	for i := range out {
		out[i] = e.Place(i)
	}
	return out
}

// Index formats i zero-padded to the digit count of the bar count itself,
// not of the highest index: with 10 bars, bar 3 is "03".
func (e *Engine) Index(i int) string {
	return fmt.Sprintf("%0*d", e.digits, i)
}

// Name returns the object name of bar i: "<prefix> <index>". The index is
// padded to the digit count of the generated bar count, so 10 bars are
// named "00" to "09".
func (e *Engine) Name(prefix string, i int) string {
	return prefix + " " + e.Index(i)
}
