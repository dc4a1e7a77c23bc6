package scene

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/goccy/go-json"
	"github.com/linuxmatters/jivebars/internal/audio"
	"github.com/linuxmatters/jivebars/internal/layout"
)

// Document is the JSON form of a scene.
type Document struct {
	ID           string           `json:"id"`
	FrameStart   int              `json:"frame_start"`
	FrameCurrent int              `json:"frame_current"`
	Objects      []ObjectDocument `json:"objects"`
	Materials    []*Material      `json:"materials"`
}

// ObjectDocument is the JSON form of an object.
type ObjectDocument struct {
	Name      string          `json:"name"`
	Location  layout.Vec3     `json:"location"`
	RotationZ float64         `json:"rotation_z"`
	Scale     layout.Vec3     `json:"scale"`
	Material  string          `json:"material,omitempty"`
	Vertices  []layout.Vec3   `json:"vertices"`
	Faces     [][]int         `json:"faces"`
	Curves    []CurveDocument `json:"curves,omitempty"`
}

// CurveDocument is the JSON form of an F-curve.
type CurveDocument struct {
	DataPath  string           `json:"data_path"`
	Index     int              `json:"index"`
	Locked    bool             `json:"locked"`
	Keyframes []audio.Keyframe `json:"keyframes"`
}

// Document snapshots the scene for export.
func (s *Scene) Document() *Document {
	doc := &Document{
		ID:           s.ID.String(),
		FrameStart:   s.FrameStart,
		FrameCurrent: s.FrameCurrent,
		Objects:      make([]ObjectDocument, 0, len(s.objects)),
		Materials:    s.Materials(),
	}
	for _, obj := range s.objects {
		od := ObjectDocument{
			Name:      obj.Name,
			Location:  obj.Location,
			RotationZ: obj.RotationZ,
			Scale:     obj.Scale,
			Vertices:  obj.Mesh.Vertices,
			Faces:     obj.Mesh.Faces,
		}
		if obj.Material != nil {
			od.Material = obj.Material.Name
		}
		if obj.Action != nil {
			for _, c := range obj.Action.Curves {
				od.Curves = append(od.Curves, CurveDocument{
					DataPath:  c.DataPath,
					Index:     int(c.Index),
					Locked:    c.Locked,
					Keyframes: c.Keyframes,
				})
			}
		}
		doc.Objects = append(doc.Objects, od)
	}
	return doc
}

// WriteJSON writes the scene document as indented JSON.
func (s *Scene) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Document()); err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}
	return nil
}

// WriteOBJ writes every object in world space as Wavefront OBJ to objW and
// its materials to mtlW. mtlLib is the file name the OBJ refers to.
func (s *Scene) WriteOBJ(objW, mtlW io.Writer, mtlLib string) error {
	ow := bufio.NewWriter(objW)
	fmt.Fprintf(ow, "# jivebars scene %s\n", s.ID)
	if mtlLib != "" {
		fmt.Fprintf(ow, "mtllib %s\n", mtlLib)
	}

	base := 1
	for _, obj := range s.objects {
		fmt.Fprintf(ow, "o %s\n", objName(obj.Name))
		for _, v := range WorldVertices(obj) {
			fmt.Fprintf(ow, "v %.6f %.6f %.6f\n", v[0], v[1], v[2])
		}
		if obj.Material != nil {
			fmt.Fprintf(ow, "usemtl %s\n", objName(obj.Material.Name))
		}
		for _, face := range obj.Mesh.Faces {
			ow.WriteString("f")
			for _, idx := range face {
				fmt.Fprintf(ow, " %d", base+idx)
			}
			ow.WriteString("\n")
		}
		base += len(obj.Mesh.Vertices)
	}
	if err := ow.Flush(); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}

	mw := bufio.NewWriter(mtlW)
	for _, m := range s.materials {
		fmt.Fprintf(mw, "newmtl %s\n", objName(m.Name))
		fmt.Fprintf(mw, "Kd %.6f %.6f %.6f\n", m.Color[0], m.Color[1], m.Color[2])
		fmt.Fprintf(mw, "Ke %.6f %.6f %.6f\n",
			m.Color[0]*m.Strength, m.Color[1]*m.Strength, m.Color[2]*m.Strength)
		mw.WriteString("illum 1\n\n")
	}
	if err := mw.Flush(); err != nil {
		return fmt.Errorf("writing MTL: %w", err)
	}
	return nil
}

// WorldVertices returns obj's vertices after scale, rotation about Z and
// translation.
func WorldVertices(obj *Object) []layout.Vec3 {
	sin, cos := math.Sincos(obj.RotationZ)
	out := make([]layout.Vec3, len(obj.Mesh.Vertices))
	for i, v := range obj.Mesh.Vertices {
		x := v[0] * obj.Scale[0]
		y := v[1] * obj.Scale[1]
		z := v[2] * obj.Scale[2]
		out[i] = layout.Vec3{
			x*cos - y*sin + obj.Location[0],
			x*sin + y*cos + obj.Location[1],
			z + obj.Location[2],
		}
	}
	return out
}

// objName replaces whitespace, which OBJ statements cannot carry.
func objName(name string) string {
	return strings.Join(strings.Fields(name), "_")
}
