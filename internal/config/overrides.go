package config

// Overrides carries command-line values that replace loaded settings.
// Nil fields leave the loaded value untouched.
type Overrides struct {
	AudioFile     *string
	CustomName    *string
	BarCount      *int
	BarShape      *string
	ColorStyle    *string
	ColorPattern  *string
	Interpolation *string
	UseRadial     *bool
	UseSymmetry   *bool
	PreviewMode   *bool
}

// Apply copies every set override into s.
func (o *Overrides) Apply(s *Settings) {
	setIf(&s.AudioFile, o.AudioFile)
	setIf(&s.CustomName, o.CustomName)
	setIf(&s.BarCount, o.BarCount)
	setIf(&s.BarShape, o.BarShape)
	setIf(&s.ColorStyle, o.ColorStyle)
	setIf(&s.ColorPattern, o.ColorPattern)
	setIf(&s.GradientInterpolation, o.Interpolation)
	setIf(&s.UseRadial, o.UseRadial)
	setIf(&s.UseSymmetry, o.UseSymmetry)
	setIf(&s.PreviewMode, o.PreviewMode)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
