package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/linuxmatters/jivebars/internal/layout"
	"github.com/linuxmatters/jivebars/internal/palette"
	"gopkg.in/yaml.v3"
)

// Settings holds every input of a generation run. It is read from and
// written back to YAML; the colour pattern is rewritten after sanitising.
type Settings struct {
	AudioFile  string `yaml:"audio_file"`
	CustomName string `yaml:"custom_name"`

	BarCount  int     `yaml:"bar_count"`
	BarShape  string  `yaml:"bar_shape"`
	BarWidth  float64 `yaml:"bar_width"`
	BarDepth  float64 `yaml:"bar_depth"`
	Amplitude float64 `yaml:"amplitude"`
	Spacing   float64 `yaml:"spacing"`

	UseRadial       bool    `yaml:"use_radial"`
	Radius          float64 `yaml:"radius"`
	ArcAngle        float64 `yaml:"arc_angle"`
	ArcCenterOffset float64 `yaml:"arc_center_offset"`
	FlipDirection   bool    `yaml:"flip_direction"`
	UseSymmetry     bool    `yaml:"use_sym"`
	PreviewMode     bool    `yaml:"preview_mode"`

	ColorStyle            string   `yaml:"color_style"`
	Colors                []string `yaml:"colors,flow"`
	ColorCount            int      `yaml:"color_count"`
	ColorPattern          string   `yaml:"color_pattern"`
	GradientInterpolation string   `yaml:"gradient_interpolation"`
	EmissionStrength      float64  `yaml:"emission_strength"`

	AttackTime  float64 `yaml:"attack_time"`
	ReleaseTime float64 `yaml:"release_time"`

	FPS     int `yaml:"fps"`
	FFTSize int `yaml:"fft_size"`
}

// Default returns settings populated from the package constants.
func Default() *Settings {
	return &Settings{
		CustomName:            CustomName,
		BarCount:              BarCount,
		BarShape:              BarShape,
		BarWidth:              BarWidth,
		BarDepth:              BarDepth,
		Amplitude:             Amplitude,
		Spacing:               Spacing,
		Radius:                Radius,
		ArcAngle:              ArcAngle,
		ArcCenterOffset:       ArcCenterOffset,
		ColorStyle:            ColorStyle,
		Colors:                append([]string(nil), DefaultColors[:]...),
		ColorCount:            ColorCount,
		ColorPattern:          ColorPattern,
		GradientInterpolation: GradientInterpolation,
		EmissionStrength:      EmissionStrength,
		AttackTime:            AttackTime,
		ReleaseTime:           ReleaseTime,
		FPS:                   FPS,
		FFTSize:               FFTSize,
	}
}

// Load reads YAML settings from path over the defaults. Keys missing from
// the file keep their default value.
func Load(path string) (*Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes the settings to path as YAML.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// LoadEnv reads .env files from the working directory and returns the
// settings file named by JIVEBARS_CONFIG, if any. Missing .env files are
// not an error.
func LoadEnv() string {
	_ = godotenv.Load()
	return os.Getenv(EnvConfigFile)
}

// Validate rejects settings the generator cannot work with.
func (s *Settings) Validate() error {
	var errs []error

	if s.BarCount <= 0 {
		errs = append(errs, fmt.Errorf("bar_count must be positive, got %d", s.BarCount))
	}
	if _, err := layout.ParseShape(s.BarShape); err != nil {
		errs = append(errs, err)
	}
	if _, err := palette.ParseStyle(s.ColorStyle); err != nil {
		errs = append(errs, err)
	}
	if _, err := palette.ParseSpace(s.GradientInterpolation); err != nil {
		errs = append(errs, err)
	}
	if s.ColorCount < 1 || s.ColorCount > palette.MaxColors {
		errs = append(errs, fmt.Errorf("color_count must be 1-%d, got %d", palette.MaxColors, s.ColorCount))
	}
	if s.Radius < 0 {
		errs = append(errs, fmt.Errorf("radius must not be negative, got %g", s.Radius))
	}
	if s.AttackTime < 0 || s.ReleaseTime < 0 {
		errs = append(errs, errors.New("attack_time and release_time must not be negative"))
	}
	if s.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", s.FPS))
	}
	if s.FFTSize < 2 || s.FFTSize&(s.FFTSize-1) != 0 {
		errs = append(errs, fmt.Errorf("fft_size must be a power of two, got %d", s.FFTSize))
	}
	if !s.PreviewMode && s.AudioFile == "" {
		errs = append(errs, errors.New("audio_file is required unless preview_mode is set"))
	}
	if len(s.Colors) > palette.MaxColors {
		errs = append(errs, fmt.Errorf("at most %d colors, got %d", palette.MaxColors, len(s.Colors)))
	}
	for i, c := range s.Colors {
		if _, _, _, err := ParseHexColor(c); err != nil {
			errs = append(errs, fmt.Errorf("colors[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

// Layout returns the layout engine configuration.
func (s *Settings) Layout() layout.Config {
	shape, _ := layout.ParseShape(s.BarShape)
	return layout.Config{
		BarCount:        s.BarCount,
		Spacing:         s.Spacing,
		Width:           s.BarWidth,
		Depth:           s.BarDepth,
		Amplitude:       s.Amplitude,
		Shape:           shape,
		Radial:          s.UseRadial,
		Radius:          s.Radius,
		ArcAngle:        s.ArcAngle,
		ArcCenterOffset: s.ArcCenterOffset,
		FlipDirection:   s.FlipDirection,
		Symmetry:        s.UseSymmetry,
		Preview:         s.PreviewMode,
	}
}

// PaletteColors converts the nine hex slots to RGB. Slots missing from
// Colors take their default; unparseable slots are black (Validate reports
// them).
func (s *Settings) PaletteColors() [palette.MaxColors]palette.Color {
	var out [palette.MaxColors]palette.Color
	for i := range out {
		c := DefaultColors[i]
		if i < len(s.Colors) {
			c = s.Colors[i]
		}
		r, g, b, err := ParseHexColor(c)
		if err != nil {
			continue
		}
		out[i] = palette.RGB(float64(r)/255, float64(g)/255, float64(b)/255)
	}
	return out
}

// ParseHexColor parses "#RRGGBB" or "RRGGBB".
func ParseHexColor(s string) (r, g, b uint8, err error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: want 6 hex digits", s)
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return raw[0], raw[1], raw[2], nil
}
