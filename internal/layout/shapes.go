// Package layout places visualiser bars in a row or along an arc and holds
// the mesh templates bars are built from.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownShape is returned for a shape without a mesh template.
var ErrUnknownShape = errors.New("unknown bar shape")

// Shape names a bar mesh template.
type Shape string

const (
	ShapeRectangle Shape = "RECTANGLE"
	ShapeTriangle  Shape = "TRIANGLE"
	ShapeCuboid    Shape = "CUBOID"
	ShapePyramid   Shape = "PYRAMID"
)

// Shapes lists the supported shapes in menu order.
var Shapes = []Shape{ShapeRectangle, ShapeTriangle, ShapeCuboid, ShapePyramid}

// ParseShape parses a shape name (case-insensitive).
func ParseShape(s string) (Shape, error) {
	shape := Shape(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := templates[shape]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
	}
	return shape, nil
}

// Vec3 is a point in scene space. Bars are laid out in the XY plane and
// grow along their local Y axis; Z is the host's vertical axis.
type Vec3 [3]float64

// Mesh is an indexed polygon mesh.
type Mesh struct {
	Vertices []Vec3
	Faces    [][]int
}

// Clone returns a deep copy so callers can transform vertices freely.
func (m Mesh) Clone() Mesh {
	out := Mesh{
		Vertices: make([]Vec3, len(m.Vertices)),
		Faces:    make([][]int, len(m.Faces)),
	}
	copy(out.Vertices, m.Vertices)
	for i, f := range m.Faces {
		out.Faces[i] = append([]int(nil), f...)
	}
	return out
}

// Templates are two units wide and two units tall with the base on y=0,
// which is why bar dimensions are divided by BaseSize.
var templates = map[Shape]Mesh{
	ShapeRectangle: {
		Vertices: []Vec3{{-1, 2, 0}, {1, 2, 0}, {1, 0, 0}, {-1, 0, 0}},
		Faces:    [][]int{{0, 1, 2, 3}},
	},
	ShapeTriangle: {
		Vertices: []Vec3{{0, 2, 0}, {1, 0, 0}, {-1, 0, 0}},
		Faces:    [][]int{{0, 1, 2}},
	},
	ShapeCuboid: {
		Vertices: []Vec3{
			{-1, 2, -1}, {1, 2, -1}, {1, 0, -1}, {-1, 0, -1},
			{-1, 2, 1}, {1, 2, 1}, {1, 0, 1}, {-1, 0, 1},
		},
		Faces: [][]int{
			{0, 1, 2, 3}, {4, 5, 6, 7}, {0, 1, 5, 4},
			{2, 3, 7, 6}, {0, 3, 7, 4}, {1, 2, 6, 5},
		},
	},
	ShapePyramid: {
		Vertices: []Vec3{{0, 2, 0}, {-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1}},
		Faces:    [][]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 1}, {1, 2, 3, 4}},
	},
}

// Template returns a copy of the mesh template for shape.
func Template(shape Shape) (Mesh, error) {
	m, ok := templates[shape]
	if !ok {
		return Mesh{}, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}
	return m.Clone(), nil
}
