package palette

import (
	"fmt"
	"strings"
)

// MaxColors is the number of configurable colour slots.
const MaxColors = 9

// Space selects the colour space gradients are blended in.
type Space int

const (
	SpaceRGB Space = iota
	SpaceHSV
	SpaceHSL
)

// String returns the configuration name of the space.
func (s Space) String() string {
	switch s {
	case SpaceRGB:
		return "RGB"
	case SpaceHSV:
		return "HSV"
	case SpaceHSL:
		return "HSL"
	default:
		return fmt.Sprintf("Space(%d)", int(s))
	}
}

// ParseSpace parses "RGB", "HSV" or "HSL" (case-insensitive).
func ParseSpace(s string) (Space, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RGB":
		return SpaceRGB, nil
	case "HSV":
		return SpaceHSV, nil
	case "HSL":
		return SpaceHSL, nil
	}
	return SpaceRGB, fmt.Errorf("unknown gradient interpolation %q (want RGB, HSV or HSL)", s)
}

// Style selects how bars are coloured.
type Style int

const (
	StyleSingle Style = iota
	StylePattern
	StyleGradient
)

// String returns the configuration name of the style.
func (s Style) String() string {
	switch s {
	case StyleSingle:
		return "SINGLE_COLOR"
	case StylePattern:
		return "PATTERN"
	case StyleGradient:
		return "GRADIENT"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle parses "SINGLE_COLOR", "PATTERN" or "GRADIENT" (case-insensitive).
func ParseStyle(s string) (Style, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SINGLE_COLOR":
		return StyleSingle, nil
	case "PATTERN":
		return StylePattern, nil
	case "GRADIENT":
		return StyleGradient, nil
	}
	return StyleSingle, fmt.Errorf("unknown color style %q (want SINGLE_COLOR, PATTERN or GRADIENT)", s)
}

// Definition is one palette slot with its precomputed representations.
type Definition struct {
	ID  byte // '1'..'9'
	RGB Color
	HSV Color
	HSL Color
}

// Repr returns the definition's channels in the requested space.
func (d Definition) Repr(space Space) Color {
	switch space {
	case SpaceHSV:
		return d.HSV
	case SpaceHSL:
		return d.HSL
	default:
		return d.RGB
	}
}

// Palette maps colour identifiers '1'..'9' to their definitions.
// It is built once per generation run and not modified afterwards.
type Palette struct {
	defs [MaxColors]Definition
}

// NewPalette builds a palette from the nine configured RGB slots.
func NewPalette(slots [MaxColors]Color) *Palette {
	p := &Palette{}
	for i, rgb := range slots {
		p.defs[i] = Definition{
			ID:  byte('1' + i),
			RGB: rgb,
			HSV: RGBToHSV(rgb),
			HSL: RGBToHSL(rgb),
		}
	}
	return p
}

// Lookup returns the definition for id.
func (p *Palette) Lookup(id byte) (Definition, bool) {
	if id < '1' || id > '9' {
		return Definition{}, false
	}
	return p.defs[id-'1'], true
}

// Repr returns the representation of id in space. Unknown ids yield black.
func (p *Palette) Repr(id byte, space Space) Color {
	def, ok := p.Lookup(id)
	if !ok {
		return Color{}
	}
	return def.Repr(space)
}
