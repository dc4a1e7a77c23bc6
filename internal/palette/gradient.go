package palette

import "math"

// Gradient returns the colour at progress (0 <= progress < 1) along a
// gradient running through the pattern's colours.
//
// The position is scaled by len(pattern)-1 so that progress approaching 1
// lands on the last pattern colour. Index lookups wrap modulo the pattern
// length. Colours are blended in space and converted back to RGB.
func Gradient(progress float64, pattern string, p *Palette, space Space) Color {
	n := len(pattern)
	if n == 0 {
		return Color{}
	}

	position := progress * float64(n-1)
	start := pattern[mod(int(math.Floor(position)), n)]
	end := pattern[mod(int(math.Ceil(position)), n)]

	blended := Lerp(p.Repr(start, space), p.Repr(end, space), math.Mod(position, 1))

	switch space {
	case SpaceHSV:
		return HSVToRGB(blended)
	case SpaceHSL:
		return HSLToRGB(blended)
	default:
		return blended
	}
}

// PatternColor returns the RGB colour of bar i when the pattern repeats
// cyclically across the bars.
func PatternColor(i int, pattern string, p *Palette) Color {
	if len(pattern) == 0 {
		return Color{}
	}
	return p.Repr(pattern[mod(i, len(pattern))], SpaceRGB)
}

// Resolver answers the colour of each bar for a configured style.
type Resolver struct {
	Style   Style
	Pattern string
	Palette *Palette
	Space   Space
	// Solid is used by StyleSingle.
	Solid Color
}

// ColorAt returns the RGB colour of bar i out of count bars.
func (r *Resolver) ColorAt(i, count int) Color {
	switch r.Style {
	case StylePattern:
		return PatternColor(i, r.Pattern, r.Palette)
	case StyleGradient:
		progress := (float64(i) + 0.5) / float64(count)
		return Gradient(progress, r.Pattern, r.Palette, r.Space)
	default:
		return r.Solid
	}
}

// mod is the non-negative remainder of a/n.
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
