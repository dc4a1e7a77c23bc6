package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/linuxmatters/jivebars/internal/layout"
	"github.com/linuxmatters/jivebars/internal/palette"
	"github.com/linuxmatters/jivebars/internal/scene"
)

// twoBars builds a scene with a red bar at x=-2 and a blue bar at x=2, both
// four units tall.
func twoBars(t *testing.T) *scene.Scene {
	t.Helper()
	s := scene.New(nil)
	mesh, err := layout.Template(layout.ShapeRectangle)
	if err != nil {
		t.Fatal(err)
	}
	colors := []palette.Color{palette.RGB(1, 0, 0), palette.RGB(0, 0, 1)}
	for i, x := range []float64{-2, 2} {
		obj, err := s.CreateMeshObject("bar "+string(rune('a'+i)), mesh)
		if err != nil {
			t.Fatal(err)
		}
		s.ApplyTransform(obj, layout.Transform{Location: layout.Vec3{x, 0, 0}, Scale: layout.Vec3{0.5, 2, 0.5}}, false)
		obj.SetMaterial(s.EmissiveMaterial(string(rune('a'+i)), colors[i], 1))
	}
	return s
}

func sameRGB(c color.Color, want color.RGBA) bool {
	r, g, b, _ := c.RGBA()
	return uint8(r>>8) == want.R && uint8(g>>8) == want.G && uint8(b>>8) == want.B
}

// TestRender_DrawsBarsInMaterialColours verifies bars land where they are in
// the scene and take their material colour.
func TestRender_DrawsBarsInMaterialColours(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height, opts.Margin = 200, 100, 10

	img, err := Render(twoBars(t), opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 200, 100) {
		t.Fatalf("bounds = %v", img.Bounds())
	}

	// The scene spans x -2.5..2.5 and y 0..4, fitted into 180x80 pixels
	// at 20 px per unit and centred horizontally: bars cover x 50..70 and
	// 130..150.
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	if c := img.At(100-40, 50); !sameRGB(c, red) {
		t.Errorf("left bar pixel = %v, want red", c)
	}
	if c := img.At(100+40, 50); !sameRGB(c, blue) {
		t.Errorf("right bar pixel = %v, want blue", c)
	}
	if c := img.At(100, 50); !sameRGB(c, opts.Background) {
		t.Errorf("gap pixel = %v, want background", c)
	}
	if c := img.At(2, 2); !sameRGB(c, opts.Background) {
		t.Errorf("corner pixel = %v, want background", c)
	}
}

// TestRender_MirrorFillsOppositeSide verifies mirrored bars appear
// reflected across x=0.
func TestRender_MirrorFillsOppositeSide(t *testing.T) {
	s := scene.New(nil)
	mesh, _ := layout.Template(layout.ShapeRectangle)
	obj, _ := s.CreateMeshObject("bar", mesh)
	s.ApplyTransform(obj, layout.Transform{Location: layout.Vec3{2, 0, 0}, Scale: layout.Vec3{0.5, 2, 0.5}}, false)
	obj.SetMaterial(s.EmissiveMaterial("bz_color", palette.RGB(0, 1, 0), 1))

	opts := DefaultOptions()
	opts.Width, opts.Height, opts.Margin = 200, 100, 10
	opts.Mirror = true

	img, err := Render(s, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	green := color.RGBA{G: 255, A: 255}
	if !sameRGB(img.At(100-40, 50), green) || !sameRGB(img.At(100+40, 50), green) {
		t.Error("mirrored bar missing")
	}
}

// TestRender_UsesPeakOfBakedCurve verifies animated bars are drawn at
// their loudest frame rather than at rest scale.
func TestRender_UsesPeakOfBakedCurve(t *testing.T) {
	s := scene.New(nil)
	mesh, _ := layout.Template(layout.ShapeRectangle)
	tall, _ := s.CreateMeshObject("tall", mesh)
	short, _ := s.CreateMeshObject("short", mesh)
	s.ApplyTransform(tall, layout.Transform{Location: layout.Vec3{-2, 0, 0}, Scale: layout.Vec3{0.5, 2, 0.5}}, true)
	s.ApplyTransform(short, layout.Transform{Location: layout.Vec3{2, 0, 0}, Scale: layout.Vec3{0.5, 2, 0.5}}, true)
	for obj, peak := range map[*scene.Object]float64{tall: 1, short: 0.25} {
		action, err := s.InsertScaleKeyframes(obj)
		if err != nil {
			t.Fatal(err)
		}
		action.Curve(scene.AxisY).Keyframes[0].Value = peak
	}

	opts := DefaultOptions()
	opts.Width, opts.Height, opts.Margin = 200, 100, 10
	img, err := Render(s, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	// Near the top of the image only the tall bar is drawn.
	if !sameRGB(img.At(100-40, 20), white) {
		t.Error("tall bar should reach the top")
	}
	if sameRGB(img.At(100+40, 20), white) {
		t.Error("short bar should not reach the top")
	}
	if !sameRGB(img.At(100+40, 85), white) {
		t.Error("short bar base missing")
	}
}

func TestRender_EmptySceneAndTitle(t *testing.T) {
	opts := DefaultOptions()
	opts.Title = "Panache, for Men"

	img, err := Render(scene.New(nil), opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Some title pixels must differ from the background.
	found := false
	for y := opts.Margin; y < opts.Margin+int(opts.FontSize) && !found; y++ {
		for x := opts.Margin; x < opts.Width/2; x++ {
			if !sameRGB(img.At(x, y), opts.Background) {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("title was not drawn")
	}
}

func TestRender_InvalidSize(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 0
	if _, err := Render(scene.New(nil), opts); err == nil {
		t.Error("expected an error for a zero-width preview")
	}
}

func TestRenderFile_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	opts := DefaultOptions()
	opts.Width, opts.Height = 320, 180

	if _, err := RenderFile(path, twoBars(t), opts); err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding preview: %v", err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 180 {
		t.Errorf("preview size = %v", img.Bounds())
	}
}

// TestRender_BackgroundImageScaled verifies a background PNG of any size is
// scaled to fill the preview.
func TestRender_BackgroundImageScaled(t *testing.T) {
	bgPath := filepath.Join(t.TempDir(), "bg.png")
	bg := image.NewRGBA(image.Rect(0, 0, 10, 10))
	purple := color.RGBA{R: 128, B: 128, A: 255}
	for i := 0; i < len(bg.Pix); i += 4 {
		copy(bg.Pix[i:i+4], []uint8{purple.R, purple.G, purple.B, purple.A})
	}
	if err := savePNG(bg, bgPath); err != nil {
		t.Fatal(err)
	}

	opts := DefaultOptions()
	opts.Width, opts.Height = 64, 48
	opts.BackgroundImage = bgPath

	img, err := Render(scene.New(nil), opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if c := img.At(63, 47); !sameRGB(c, purple) {
		t.Errorf("bottom-right pixel = %v, want purple", c)
	}

	opts.BackgroundImage = filepath.Join(t.TempDir(), "missing.png")
	if _, err := Render(scene.New(nil), opts); err == nil {
		t.Error("expected an error for a missing background image")
	}
}

// TestSavePNG_ReportsWriteFailures catches a save that drops the write
// error and reports success for a truncated file.
func TestSavePNG_ReportsWriteFailures(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))

	if err := savePNG(image.NewRGBA(image.Rect(0, 0, 0, 0)), filepath.Join(t.TempDir(), "empty.png")); err == nil {
		t.Error("expected an error encoding a zero-size image")
	}

	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	if err := savePNG(img, "/dev/full"); err == nil {
		t.Error("expected an error writing to a full device")
	}
}
