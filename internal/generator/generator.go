// Package generator builds an audio-reactive bar visualiser into a scene.
package generator

import (
	"context"
	"fmt"

	"github.com/kpango/glg"
	"github.com/linuxmatters/jivebars/internal/audio"
	"github.com/linuxmatters/jivebars/internal/config"
	"github.com/linuxmatters/jivebars/internal/layout"
	"github.com/linuxmatters/jivebars/internal/palette"
	"github.com/linuxmatters/jivebars/internal/scene"
)

// MaterialPrefix names generated materials. Single-colour runs share the
// bare prefix; the other styles append the bar index.
const MaterialPrefix = "bz_color"

// invalidPatternMessage is reported when no usable colour remains.
const invalidPatternMessage = "Color Pattern is invalid!"

// BarSpec records what was generated for one bar.
type BarSpec struct {
	Name      string
	Transform layout.Transform
	// Band is zero in preview mode, where nothing is baked.
	Band     audio.Band
	Color    palette.Color
	Material string
}

// Result summarises a generation run.
type Result struct {
	Bars     []BarSpec
	Warnings []palette.Warning
	// Removed counts objects from a previous run that were deleted.
	Removed int
}

// Generator drives a Host through one visualiser generation.
type Generator struct {
	Host     scene.Host
	Reporter scene.Reporter
}

// New creates a generator.
func New(host scene.Host, reporter scene.Reporter) *Generator {
	return &Generator{Host: host, Reporter: reporter}
}

// Run generates the visualiser described by s. The sanitised colour pattern
// is written back to s.ColorPattern. Cancelling ctx stops between bars and
// leaves the bars generated so far in the scene.
func (g *Generator) Run(ctx context.Context, s *config.Settings) (*Result, error) {
	g.Host.ResetFrame()

	engine, err := layout.NewEngine(s.Layout())
	if err != nil {
		return nil, g.fail(err)
	}
	shape, err := layout.ParseShape(s.BarShape)
	if err != nil {
		return nil, g.fail(err)
	}
	mesh, err := layout.Template(shape)
	if err != nil {
		return nil, g.fail(err)
	}
	style, err := palette.ParseStyle(s.ColorStyle)
	if err != nil {
		return nil, g.fail(err)
	}
	space, err := palette.ParseSpace(s.GradientInterpolation)
	if err != nil {
		return nil, g.fail(err)
	}

	result := &Result{}
	colors := s.PaletteColors()
	resolver := &palette.Resolver{Style: style, Space: space, Solid: colors[0]}

	var material *scene.Material
	if style == palette.StyleSingle {
		material = g.Host.EmissiveMaterial(MaterialPrefix, colors[0], s.EmissionStrength)
	} else {
		resolver.Palette = palette.NewPalette(colors)
		parsed := palette.SanitizePattern(s.ColorPattern, s.ColorCount)
		for _, w := range parsed.Warnings {
			g.Reporter.Warning(string(w))
		}
		result.Warnings = parsed.Warnings
		s.ColorPattern = parsed.Stored

		if parsed.Empty() {
			g.Reporter.Error(invalidPatternMessage)
			return result, palette.ErrEmptyPattern
		}
		resolver.Pattern = parsed.Pattern
	}

	result.Removed = g.Host.RemoveObjectsByPrefix(s.CustomName)

	count := engine.Count()
	bands := audio.NewBandAllocator(count)
	glg.Debugf("generating %d %s bars (style %s, preview %v)", count, shape, style, s.PreviewMode)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		name := engine.Name(s.CustomName, i)
		obj, err := g.Host.CreateMeshObject(name, mesh)
		if err != nil {
			return result, g.fail(err)
		}

		bar := BarSpec{Name: name, Transform: engine.Place(i)}

		if s.PreviewMode {
			g.Host.ApplyTransform(obj, bar.Transform, false)
		} else {
			bar.Band = bands.Next()
			if err := g.bake(obj, bar, s); err != nil {
				return result, g.fail(err)
			}
		}

		bar.Color = resolver.ColorAt(i, count)
		if style != palette.StyleSingle {
			material = g.Host.EmissiveMaterial(MaterialPrefix+engine.Index(i), bar.Color, s.EmissionStrength)
		}
		obj.SetMaterial(material)
		obj.Selected = false
		bar.Material = material.Name

		result.Bars = append(result.Bars, bar)
		g.Reporter.Progress(float64(i) / float64(count))
	}

	g.Reporter.Progress(1)
	g.Host.ClearSelection()
	return result, nil
}

// bake freezes the bar's scale into its mesh, keys it, and replaces the Y
// scale curve with the band envelope. X and Z stay locked at their key.
func (g *Generator) bake(obj *scene.Object, bar BarSpec, s *config.Settings) error {
	g.Host.ApplyTransform(obj, bar.Transform, true)

	action, err := g.Host.InsertScaleKeyframes(obj)
	if err != nil {
		return err
	}
	action.Curve(scene.AxisX).Lock()
	action.Curve(scene.AxisZ).Lock()

	req := scene.BakeRequest{
		File: s.AudioFile,
		BakeRequest: audio.BakeRequest{
			Band:    bar.Band,
			Attack:  s.AttackTime,
			Release: s.ReleaseTime,
		},
	}
	if err := g.Host.BakeAmplitude(obj, req); err != nil {
		return err
	}
	action.Curve(scene.AxisY).Lock()
	return nil
}

func (g *Generator) fail(err error) error {
	g.Reporter.Error(err.Error())
	return fmt.Errorf("generating visualizer: %w", err)
}
