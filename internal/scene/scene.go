package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kpango/glg"
	"github.com/linuxmatters/jivebars/internal/layout"
	"github.com/linuxmatters/jivebars/internal/palette"
)

// ErrDuplicateName is returned when an object name is already taken.
var ErrDuplicateName = errors.New("object name already in use")

// Object is a mesh placed in the scene.
type Object struct {
	Name      string
	Mesh      layout.Mesh
	Location  layout.Vec3
	RotationZ float64
	Scale     layout.Vec3
	Material  *Material
	Action    *Action
	Selected  bool
}

// SetMaterial makes m the object's active material.
func (o *Object) SetMaterial(m *Material) { o.Material = m }

// Scene is the in-memory Host implementation.
type Scene struct {
	ID           uuid.UUID
	FrameCurrent int
	FrameStart   int

	objects   []*Object
	byName    map[string]*Object
	materials []*Material
	active    *Object
	baker     Baker
}

// New creates an empty scene. baker may be nil when no audio is baked.
func New(baker Baker) *Scene {
	return &Scene{
		ID:           uuid.New(),
		FrameCurrent: 1,
		FrameStart:   1,
		byName:       make(map[string]*Object),
		baker:        baker,
	}
}

// Objects returns the scene's objects in creation order.
func (s *Scene) Objects() []*Object {
	return append([]*Object(nil), s.objects...)
}

// Object looks up an object by name.
func (s *Scene) Object(name string) (*Object, bool) {
	obj, ok := s.byName[name]
	return obj, ok
}

// Materials returns every material in creation order.
func (s *Scene) Materials() []*Material {
	return append([]*Material(nil), s.materials...)
}

// Material looks up a material by name.
func (s *Scene) Material(name string) (*Material, bool) {
	for _, m := range s.materials {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Active returns the most recently created object, or nil after
// ClearSelection.
func (s *Scene) Active() *Object { return s.active }

// ResetFrame moves the playhead back to the first frame.
func (s *Scene) ResetFrame() {
	s.FrameCurrent = 1
}

// RemoveObjectsByPrefix deletes every object whose name starts with prefix
// and returns how many were removed. Materials are kept.
func (s *Scene) RemoveObjectsByPrefix(prefix string) int {
	kept := s.objects[:0]
	removed := 0
	for _, obj := range s.objects {
		if strings.HasPrefix(obj.Name, prefix) {
			delete(s.byName, obj.Name)
			if s.active == obj {
				s.active = nil
			}
			removed++
			continue
		}
		kept = append(kept, obj)
	}
	for i := len(kept); i < len(s.objects); i++ {
		s.objects[i] = nil
	}
	s.objects = kept

	if removed > 0 {
		glg.Debugf("removed %d objects with prefix %q", removed, prefix)
	}
	return removed
}

// CreateMeshObject links a new object holding a copy of mesh into the
// scene, selects it and makes it active.
func (s *Scene) CreateMeshObject(name string, mesh layout.Mesh) (*Object, error) {
	if _, ok := s.byName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	obj := &Object{
		Name:     name,
		Mesh:     mesh.Clone(),
		Scale:    layout.Vec3{1, 1, 1},
		Selected: true,
	}
	s.objects = append(s.objects, obj)
	s.byName[name] = obj
	s.active = obj
	return obj, nil
}

// ApplyTransform places obj. With freezeScale the scale is multiplied into
// the mesh vertices and the object scale reset to one, as a bake expects.
func (s *Scene) ApplyTransform(obj *Object, t layout.Transform, freezeScale bool) {
	obj.Location = t.Location
	obj.RotationZ = t.RotationZ
	if !freezeScale {
		obj.Scale = t.Scale
		return
	}
	for i, v := range obj.Mesh.Vertices {
		for k := range v {
			v[k] *= t.Scale[k]
		}
		obj.Mesh.Vertices[i] = v
	}
	obj.Scale = layout.Vec3{1, 1, 1}
}

// InsertScaleKeyframes keys obj's current scale at the current frame,
// creating its action if needed.
func (s *Scene) InsertScaleKeyframes(obj *Object) (*Action, error) {
	if obj.Action == nil {
		obj.Action = &Action{Name: obj.Name + "Action"}
		for axis := AxisX; axis <= AxisZ; axis++ {
			obj.Action.Curves[axis] = &FCurve{DataPath: "scale", Index: axis}
		}
	}
	for axis, c := range obj.Action.Curves {
		if c.Locked {
			continue
		}
		key := keyframeAt(s.FrameCurrent, obj.Scale[axis])
		if err := c.Set(upsertKey(c.Keyframes, key)); err != nil {
			return nil, err
		}
	}
	return obj.Action, nil
}

// BakeAmplitude replaces obj's Y scale curve with the envelope of a band.
func (s *Scene) BakeAmplitude(obj *Object, req BakeRequest) error {
	if s.baker == nil {
		return errors.New("scene has no sound baker")
	}
	if obj.Action == nil {
		return fmt.Errorf("%s: no action to bake into", obj.Name)
	}

	keys, err := s.baker.Bake(req.File, req.BakeRequest)
	if err != nil {
		return fmt.Errorf("baking %s: %w", obj.Name, err)
	}
	if err := obj.Action.Curve(AxisY).Set(keys); err != nil {
		return err
	}

	glg.Debugf("%s: baked %.2f-%.2f Hz into %d keyframes", obj.Name, req.Band.Low, req.Band.High, len(keys))
	return nil
}

// EmissiveMaterial returns the material called name, creating it if needed,
// and (re)builds its emission node tree with rgb and strength.
func (s *Scene) EmissiveMaterial(name string, rgb palette.Color, strength float64) *Material {
	m, ok := s.Material(name)
	if !ok {
		m = &Material{Name: name}
		s.materials = append(s.materials, m)
	}
	m.Color = rgb
	m.Strength = strength
	m.buildEmissionTree()
	return m
}

// ClearSelection deselects every object and clears the active object.
func (s *Scene) ClearSelection() {
	for _, obj := range s.objects {
		obj.Selected = false
	}
	s.active = nil
}
