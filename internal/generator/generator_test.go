package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/linuxmatters/jivebars/internal/audio"
	"github.com/linuxmatters/jivebars/internal/config"
	"github.com/linuxmatters/jivebars/internal/layout"
	"github.com/linuxmatters/jivebars/internal/palette"
	"github.com/linuxmatters/jivebars/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	progress []float64
	warnings []string
	errors   []string
}

func (r *recorder) Progress(f float64) { r.progress = append(r.progress, f) }
func (r *recorder) Warning(msg string) { r.warnings = append(r.warnings, msg) }
func (r *recorder) Error(msg string)   { r.errors = append(r.errors, msg) }

type stubBaker struct {
	bands []audio.Band
	err   error
}

func (b *stubBaker) Bake(_ string, req audio.BakeRequest) ([]audio.Keyframe, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.bands = append(b.bands, req.Band)
	return []audio.Keyframe{{Frame: 1, Value: 0}, {Frame: 2, Value: 0.5}}, nil
}

func settings(mod func(s *config.Settings)) *config.Settings {
	s := config.Default()
	s.BarCount = 4
	s.AudioFile = "song.wav"
	s.PreviewMode = true
	s.Colors = []string{"#FF0000", "#0000FF", "#00FF00"}
	if mod != nil {
		mod(s)
	}
	return s
}

func run(t *testing.T, sc *scene.Scene, s *config.Settings) (*Result, *recorder, error) {
	t.Helper()
	rec := &recorder{}
	res, err := New(sc, rec).Run(context.Background(), s)
	return res, rec, err
}

func names(sc *scene.Scene) []string {
	var out []string
	for _, obj := range sc.Objects() {
		out = append(out, obj.Name)
	}
	return out
}

func TestRun_SingleColorSharesMaterial(t *testing.T) {
	sc := scene.New(nil)
	res, rec, err := run(t, sc, settings(nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"bz_bar 0", "bz_bar 1", "bz_bar 2", "bz_bar 3"}, names(sc))
	require.Len(t, sc.Materials(), 1)
	m := sc.Materials()[0]
	assert.Equal(t, "bz_color", m.Name)
	assert.Equal(t, palette.RGB(1, 0, 0), m.Color)
	for _, obj := range sc.Objects() {
		assert.Same(t, m, obj.Material)
	}
	assert.Len(t, res.Bars, 4)
	assert.Empty(t, rec.warnings)
	assert.Empty(t, rec.errors)
}

// TestRun_PatternMaterialsPerBar verifies pattern styles give every bar its
// own material named after the bar index, coloured by cycling the pattern.
func TestRun_PatternMaterialsPerBar(t *testing.T) {
	sc := scene.New(nil)
	s := settings(func(s *config.Settings) {
		s.BarCount = 3
		s.ColorStyle = "PATTERN"
		s.ColorCount = 2
		s.ColorPattern = "21"
	})
	res, _, err := run(t, sc, s)
	require.NoError(t, err)

	require.Len(t, res.Bars, 3)
	wantMaterials := []string{"bz_color0", "bz_color1", "bz_color2"}
	wantColors := []palette.Color{palette.RGB(0, 0, 1), palette.RGB(1, 0, 0), palette.RGB(0, 0, 1)}
	for i, bar := range res.Bars {
		assert.Equal(t, wantMaterials[i], bar.Material)
		assert.Equal(t, wantColors[i], bar.Color)
		obj, ok := sc.Object(bar.Name)
		require.True(t, ok)
		assert.Equal(t, wantMaterials[i], obj.Material.Name)
	}
	assert.Len(t, sc.Materials(), 3)
}

func TestRun_GradientScenario(t *testing.T) {
	sc := scene.New(nil)
	s := settings(func(s *config.Settings) {
		s.BarCount = 2
		s.ColorStyle = "GRADIENT"
		s.ColorCount = 2
		s.ColorPattern = "12"
		s.GradientInterpolation = "RGB"
	})
	res, _, err := run(t, sc, s)
	require.NoError(t, err)

	require.Len(t, res.Bars, 2)
	want := []palette.Color{{0.75, 0, 0.25}, {0.25, 0, 0.75}}
	for i, bar := range res.Bars {
		for k := range want[i] {
			assert.InDelta(t, want[i][k], bar.Color[k], 1e-9, "bar %d channel %d", i, k)
		}
	}
}

// TestRun_EmptyPatternAborts verifies an unusable pattern creates nothing
// and leaves the previous run's bars in place.
func TestRun_EmptyPatternAborts(t *testing.T) {
	sc := scene.New(nil)
	_, err := sc.CreateMeshObject("bz_bar 0", layout.Mesh{})
	require.NoError(t, err)

	s := settings(func(s *config.Settings) {
		s.ColorStyle = "PATTERN"
		s.ColorPattern = "abc"
	})
	_, rec, err := run(t, sc, s)

	assert.True(t, errors.Is(err, palette.ErrEmptyPattern))
	assert.Equal(t, []string{"Color Pattern is invalid!"}, rec.errors)
	assert.Equal(t, []string{string(palette.WarnInvalidCharacters)}, rec.warnings)
	assert.Equal(t, "", s.ColorPattern)
	assert.Equal(t, []string{"bz_bar 0"}, names(sc))
	assert.Empty(t, sc.Materials())
	assert.Empty(t, rec.progress)
}

// TestRun_PersistsSanitisedPattern verifies warnings are reported and the
// digits-only pattern is written back.
func TestRun_PersistsSanitisedPattern(t *testing.T) {
	s := settings(func(s *config.Settings) {
		s.ColorStyle = "PATTERN"
		s.ColorCount = 3
		s.ColorPattern = "1x239"
	})
	res, rec, err := run(t, scene.New(nil), s)
	require.NoError(t, err)

	assert.Equal(t, "1239", s.ColorPattern)
	assert.Equal(t, []string{string(palette.WarnExtraColors), string(palette.WarnInvalidCharacters)}, rec.warnings)
	assert.Equal(t, []palette.Warning{palette.WarnExtraColors, palette.WarnInvalidCharacters}, res.Warnings)
}

// TestRun_RegenerationReplacesBars verifies a second run removes only the
// bars of the first.
func TestRun_RegenerationReplacesBars(t *testing.T) {
	sc := scene.New(nil)
	_, err := sc.CreateMeshObject("Camera", layout.Mesh{})
	require.NoError(t, err)

	_, _, err = run(t, sc, settings(nil))
	require.NoError(t, err)
	res, _, err := run(t, sc, settings(func(s *config.Settings) { s.BarCount = 2 }))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Removed)
	assert.Equal(t, []string{"Camera", "bz_bar 0", "bz_bar 1"}, names(sc))
	assert.Len(t, sc.Materials(), 1, "materials are reused by name")
}

// TestRun_BakesContiguousBands verifies each bar is baked from the next
// band of the fold and its curves end up locked.
func TestRun_BakesContiguousBands(t *testing.T) {
	baker := &stubBaker{}
	sc := scene.New(baker)
	s := settings(func(s *config.Settings) {
		s.PreviewMode = false
		s.BarCount = 6
		s.Amplitude = 4
	})
	res, _, err := run(t, sc, s)
	require.NoError(t, err)

	assert.Equal(t, audio.Bands(6), baker.bands)
	for i, bar := range res.Bars {
		assert.Equal(t, baker.bands[i], bar.Band)

		obj, _ := sc.Object(bar.Name)
		assert.Equal(t, layout.Vec3{1, 1, 1}, obj.Scale, "scale frozen into mesh")
		assert.InDelta(t, 4.0, obj.Mesh.Vertices[0][1], 1e-9, "mesh top at amplitude")
		require.NotNil(t, obj.Action)
		for axis := scene.AxisX; axis <= scene.AxisZ; axis++ {
			assert.True(t, obj.Action.Curve(axis).Locked, "axis %s", axis)
		}
		assert.Len(t, obj.Action.Curve(scene.AxisY).Keyframes, 2)
		assert.Len(t, obj.Action.Curve(scene.AxisX).Keyframes, 1)
	}
}

// TestRun_PreviewSkipsBake verifies preview mode never touches the audio
// and uses the static wave for height.
func TestRun_PreviewSkipsBake(t *testing.T) {
	baker := &stubBaker{}
	sc := scene.New(baker)
	s := settings(func(s *config.Settings) { s.BarCount = 8 })
	res, _, err := run(t, sc, s)
	require.NoError(t, err)

	assert.Empty(t, baker.bands)
	engine, err := layout.NewEngine(s.Layout())
	require.NoError(t, err)
	for i, bar := range res.Bars {
		obj, _ := sc.Object(bar.Name)
		assert.Nil(t, obj.Action)
		assert.Equal(t, audio.Band{}, bar.Band)
		assert.InDelta(t, engine.PreviewAmplitude(i), obj.Scale[1], 1e-12)
	}
}

func TestRun_ProgressReported(t *testing.T) {
	_, rec, err := run(t, scene.New(nil), settings(nil))
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, rec.progress)
}

func TestRun_SymmetryHalvesBars(t *testing.T) {
	sc := scene.New(nil)
	res, _, err := run(t, sc, settings(func(s *config.Settings) {
		s.BarCount = 5
		s.UseSymmetry = true
	}))
	require.NoError(t, err)
	assert.Len(t, res.Bars, 2, "round half to even")
}

func TestRun_NamesZeroPadded(t *testing.T) {
	sc := scene.New(nil)
	res, _, err := run(t, sc, settings(func(s *config.Settings) {
		s.BarCount = 12
		s.CustomName = "viz"
	}))
	require.NoError(t, err)
	assert.Equal(t, "viz 00", res.Bars[0].Name)
	assert.Equal(t, "viz 11", res.Bars[11].Name)
}

func TestRun_SelectionCleared(t *testing.T) {
	sc := scene.New(nil)
	_, _, err := run(t, sc, settings(nil))
	require.NoError(t, err)

	assert.Nil(t, sc.Active())
	for _, obj := range sc.Objects() {
		assert.False(t, obj.Selected)
	}
	assert.Equal(t, 1, sc.FrameCurrent)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := scene.New(nil)
	_, err := New(sc, &recorder{}).Run(ctx, settings(nil))

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, sc.Objects())
}

// TestRun_BakeFailureAborts verifies a host failure stops the run and is
// reported, with no rollback of bars already made.
func TestRun_BakeFailureAborts(t *testing.T) {
	sc := scene.New(&stubBaker{err: errors.New("cannot decode")})
	_, rec, err := run(t, sc, settings(func(s *config.Settings) { s.PreviewMode = false }))

	require.Error(t, err)
	assert.ErrorContains(t, err, "cannot decode")
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "cannot decode")
	assert.Len(t, sc.Objects(), 1)
}

func TestRun_InvalidSettings(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *config.Settings)
		is     error
	}{
		{"zero bars", func(s *config.Settings) { s.BarCount = 0 }, layout.ErrInvalidBarCount},
		{"unknown shape", func(s *config.Settings) { s.BarShape = "STAR" }, layout.ErrUnknownShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rec, err := run(t, scene.New(nil), settings(tt.modify))
			assert.True(t, errors.Is(err, tt.is), "got %v", err)
			assert.Len(t, rec.errors, 1)
		})
	}
}
