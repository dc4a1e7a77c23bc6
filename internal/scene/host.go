// Package scene is the host the visualiser is generated into: an in-memory
// scene graph of mesh objects, emissive materials and scale animation.
package scene

import (
	"github.com/linuxmatters/jivebars/internal/audio"
	"github.com/linuxmatters/jivebars/internal/layout"
	"github.com/linuxmatters/jivebars/internal/palette"
)

// Host is everything the generator needs from the 3D application.
type Host interface {
	ResetFrame()
	RemoveObjectsByPrefix(prefix string) int
	CreateMeshObject(name string, mesh layout.Mesh) (*Object, error)
	ApplyTransform(obj *Object, t layout.Transform, freezeScale bool)
	InsertScaleKeyframes(obj *Object) (*Action, error)
	BakeAmplitude(obj *Object, req BakeRequest) error
	EmissiveMaterial(name string, rgb palette.Color, strength float64) *Material
	ClearSelection()
}

// Reporter receives user-facing feedback while a scene is generated.
type Reporter interface {
	Progress(fraction float64)
	Warning(msg string)
	Error(msg string)
}

// BakeRequest asks the host to animate an object's Y scale from one
// frequency band of an audio file.
type BakeRequest struct {
	File string
	audio.BakeRequest
}

// Baker produces keyframes for a band of an audio file.
type Baker interface {
	Bake(filename string, req audio.BakeRequest) ([]audio.Keyframe, error)
}
