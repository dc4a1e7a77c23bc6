package scene

import (
	"errors"
	"fmt"

	"github.com/linuxmatters/jivebars/internal/audio"
)

// ErrCurveLocked is returned when writing to a locked F-curve.
var ErrCurveLocked = errors.New("f-curve is locked")

// Axis indexes the components of a vector property.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	return [...]string{"x", "y", "z"}[a]
}

// FCurve animates one component of an object property.
type FCurve struct {
	DataPath  string
	Index     Axis
	Keyframes []audio.Keyframe
	Locked    bool
}

// Lock prevents further edits to the curve.
func (c *FCurve) Lock() { c.Locked = true }

// Set replaces the curve's keyframes.
func (c *FCurve) Set(keys []audio.Keyframe) error {
	if c.Locked {
		return fmt.Errorf("%s[%s]: %w", c.DataPath, c.Index, ErrCurveLocked)
	}
	c.Keyframes = append([]audio.Keyframe(nil), keys...)
	return nil
}

// Peak returns the largest keyframe value, or 0 for an empty curve.
func (c *FCurve) Peak() float64 {
	var peak float64
	for _, k := range c.Keyframes {
		if k.Value > peak {
			peak = k.Value
		}
	}
	return peak
}

// Action is the animation attached to one object: scale x, y and z.
type Action struct {
	Name   string
	Curves [3]*FCurve
}

// Curve returns the scale curve of axis a.
func (a *Action) Curve(axis Axis) *FCurve {
	return a.Curves[axis]
}

func keyframeAt(frame int, value float64) audio.Keyframe {
	return audio.Keyframe{Frame: frame, Value: value}
}

// upsertKey inserts key in frame order, replacing any key on the same frame.
func upsertKey(keys []audio.Keyframe, key audio.Keyframe) []audio.Keyframe {
	out := make([]audio.Keyframe, 0, len(keys)+1)
	inserted := false
	for _, k := range keys {
		switch {
		case k.Frame == key.Frame:
			continue
		case !inserted && k.Frame > key.Frame:
			out = append(out, key)
			inserted = true
		}
		out = append(out, k)
	}
	if !inserted {
		out = append(out, key)
	}
	return out
}
