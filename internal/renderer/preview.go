// Package renderer draws diagnostic preview images of generated scenes.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/linuxmatters/jivebars/internal/config"
	"github.com/linuxmatters/jivebars/internal/scene"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Options controls the preview image.
type Options struct {
	Width  int
	Height int
	Margin int

	Title     string
	FontSize  float64
	TextColor color.RGBA

	Background color.RGBA
	// BackgroundImage is an optional PNG scaled to fill the image.
	BackgroundImage string

	// Mirror also draws every bar reflected across x=0, the way symmetric
	// visualisers are completed by the host.
	Mirror bool
}

// DefaultOptions returns a dark 1280x720 preview with a brand yellow title.
func DefaultOptions() Options {
	return Options{
		Width:      config.PreviewWidth,
		Height:     config.PreviewHeight,
		Margin:     config.PreviewMargin,
		FontSize:   config.PreviewFontSize,
		TextColor:  color.RGBA{R: 248, G: 179, B: 29, A: 255},
		Background: color.RGBA{R: 16, G: 16, B: 20, A: 255},
	}
}

// polygon is a filled face in scene XY coordinates.
type polygon struct {
	points [][2]float64
	fill   color.RGBA
}

// Render draws the scene's bars seen from above (looking down Z) at their
// loudest: animated bars use the peak of their Y scale curve.
func Render(s *scene.Scene, opts Options) (*image.RGBA, error) {
	img, err := newCanvas(opts)
	if err != nil {
		return nil, err
	}

	var face font.Face
	titleHeight := 0
	if opts.Title != "" {
		f, err := truetype.Parse(gobold.TTF)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		size := fitFontSize(f, opts.Title, opts.FontSize, opts.Width-2*opts.Margin)
		face = truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72})
		defer face.Close()
		titleHeight = face.Metrics().Height.Ceil() + opts.Margin/2
	}

	polys := collectPolygons(s, opts.Mirror)
	area := image.Rect(opts.Margin, opts.Margin+titleHeight, opts.Width-opts.Margin, opts.Height-opts.Margin)
	drawPolygons(img, polys, area)

	if face != nil {
		drawTitle(img, face, opts.Title, opts.TextColor, opts.Margin)
	}
	return img, nil
}

// RenderFile renders the scene and writes it to path as PNG. The image is
// returned for further display.
func RenderFile(path string, s *scene.Scene, opts Options) (*image.RGBA, error) {
	img, err := Render(s, opts)
	if err != nil {
		return nil, err
	}
	if err := savePNG(img, path); err != nil {
		return nil, fmt.Errorf("failed to save preview: %w", err)
	}
	return img, nil
}

func newCanvas(opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", opts.Width, opts.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	if opts.BackgroundImage != "" {
		bg, err := loadImage(opts.BackgroundImage)
		if err != nil {
			return nil, fmt.Errorf("failed to load background image: %w", err)
		}
		draw.BiLinear.Scale(img, img.Bounds(), bg, bg.Bounds(), draw.Src, nil)
	}
	return img, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

// collectPolygons projects every face onto the XY plane.
func collectPolygons(s *scene.Scene, mirror bool) []polygon {
	var polys []polygon
	for _, obj := range s.Objects() {
		fill := color.RGBA{R: 255, G: 255, B: 255, A: 255}
		if obj.Material != nil {
			fill = obj.Material.Color.RGBA()
		}

		posed := *obj
		if obj.Action != nil {
			posed.Scale[1] = obj.Action.Curve(scene.AxisY).Peak()
		}
		verts := scene.WorldVertices(&posed)

		for _, f := range obj.Mesh.Faces {
			p := polygon{fill: fill}
			for _, idx := range f {
				p.points = append(p.points, [2]float64{verts[idx][0], verts[idx][1]})
			}
			polys = append(polys, p)
			if mirror {
				m := polygon{fill: fill}
				for _, pt := range p.points {
					m.points = append(m.points, [2]float64{-pt[0], pt[1]})
				}
				polys = append(polys, m)
			}
		}
	}
	return polys
}

// drawPolygons fits the polygons into area, keeping their aspect ratio, and
// fills them with a vector rasterizer.
func drawPolygons(img *image.RGBA, polys []polygon, area image.Rectangle) {
	if len(polys) == 0 || area.Empty() {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range polys {
		for _, pt := range p.points {
			minX = math.Min(minX, pt[0])
			maxX = math.Max(maxX, pt[0])
			minY = math.Min(minY, pt[1])
			maxY = math.Max(maxY, pt[1])
		}
	}
	spanX := math.Max(maxX-minX, 1e-9)
	spanY := math.Max(maxY-minY, 1e-9)
	scale := math.Min(float64(area.Dx())/spanX, float64(area.Dy())/spanY)

	// Centre the drawing in area; image Y grows downwards.
	offX := float64(area.Min.X) + (float64(area.Dx())-spanX*scale)/2
	offY := float64(area.Min.Y) + (float64(area.Dy())-spanY*scale)/2
	toPixel := func(pt [2]float64) (float32, float32) {
		x := offX + (pt[0]-minX)*scale
		y := offY + (maxY-pt[1])*scale
		return float32(x), float32(y)
	}

	b := img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	for _, p := range polys {
		if len(p.points) < 3 {
			continue
		}
		r.Reset(b.Dx(), b.Dy())
		r.DrawOp = draw.Over
		r.MoveTo(toPixel(p.points[0]))
		for _, pt := range p.points[1:] {
			r.LineTo(toPixel(pt))
		}
		r.ClosePath()
		r.Draw(img, b, image.NewUniform(p.fill), image.Point{})
	}
}

// fitFontSize finds the largest size up to maxSize at which text fits in
// maxWidth pixels.
func fitFontSize(f *truetype.Font, text string, maxSize float64, maxWidth int) float64 {
	for size := maxSize; size > 10.0; size -= 2.0 {
		face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72})
		width, _ := measureText(face, text)
		face.Close()
		if width <= maxWidth {
			return size
		}
	}
	return 10.0
}

// measureText returns the width and bounds of rendered text. Min.Y is
// negative for ascent, Max.Y positive for descent.
func measureText(face font.Face, text string) (int, fixed.Rectangle26_6) {
	d := &font.Drawer{Face: face}
	bounds, _ := d.BoundString(text)
	width := (bounds.Max.X - bounds.Min.X).Ceil()
	return width, bounds
}

// drawTitle draws text in the top left corner, inset by margin.
func drawTitle(img *image.RGBA, face font.Face, text string, c color.RGBA, margin int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()
	d.Dot = freetype.Pt(margin, margin+ascent)
	d.DrawString(text)
}

// savePNG writes img to path.
func savePNG(img image.Image, path string) error {
	outFile, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(outFile, img); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}
