package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/linuxmatters/jivebars/internal/layout"
)

// TestShapeHelpListsEveryShape catches a shape accepted by the layout
// engine but missing from the --shape help text.
func TestShapeHelpListsEveryShape(t *testing.T) {
	field, ok := reflect.TypeOf(CLI).FieldByName("Shape")
	if !ok {
		t.Fatal("CLI has no Shape flag")
	}
	help := field.Tag.Get("help")

	shapes := []layout.Shape{
		layout.ShapeRectangle,
		layout.ShapeTriangle,
		layout.ShapeCuboid,
		layout.ShapePyramid,
	}
	for _, shape := range shapes {
		if _, err := layout.ParseShape(string(shape)); err != nil {
			t.Fatalf("ParseShape(%q): %v", shape, err)
		}
		if !strings.Contains(help, string(shape)) {
			t.Errorf("--shape help %q does not list %s", help, shape)
		}
	}
}
