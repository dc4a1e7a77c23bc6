// Package palette implements the colour model used to paint visualiser bars:
// colour space conversions, the user colour pattern and gradient lookups.
package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color holds three channels in the range 0.0-1.0. Depending on context the
// channels are RGB, HSV (h, s, v) or HSL (h, s, l); the space is not tagged.
// Hue is normalised to 0.0-1.0 rather than degrees.
type Color [3]float64

// RGB builds a colour from red, green and blue channels.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// RGBToHSV converts an RGB colour to (h, s, v). Achromatic input has hue 0.
func RGBToHSV(c Color) Color {
	h, s, v := colorful.Color{R: c[0], G: c[1], B: c[2]}.Hsv()
	return Color{h / 360.0, s, v}
}

// HSVToRGB converts (h, s, v) back to RGB.
func HSVToRGB(c Color) Color {
	rgb := colorful.Hsv(wrapHue(c[0])*360.0, c[1], c[2])
	return Color{rgb.R, rgb.G, rgb.B}
}

// RGBToHSL converts an RGB colour to (h, s, l). Achromatic input has hue 0.
func RGBToHSL(c Color) Color {
	h, s, l := colorful.Color{R: c[0], G: c[1], B: c[2]}.Hsl()
	return Color{h / 360.0, s, l}
}

// HSLToRGB converts (h, s, l) back to RGB.
func HSLToRGB(c Color) Color {
	rgb := colorful.Hsl(wrapHue(c[0])*360.0, c[1], c[2])
	return Color{rgb.R, rgb.G, rgb.B}
}

// Lerp interpolates each channel linearly. ratio is not clamped.
func Lerp(start, end Color, ratio float64) Color {
	var result Color
	for k := 0; k < 3; k++ {
		result[k] = start[k] + ratio*(end[k]-start[k])
	}
	return result
}

// RGBA converts an RGB colour to an opaque 8-bit colour for image output.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: channel8(c[0]), G: channel8(c[1]), B: channel8(c[2]), A: 255}
}

// Hex formats an RGB colour as #rrggbb.
func (c Color) Hex() string {
	return colorful.Color{R: clamp01(c[0]), G: clamp01(c[1]), B: clamp01(c[2])}.Hex()
}

// wrapHue folds hue 1.0 onto 0.0 so conversions see a value in [0, 1).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 1.0)
	if h < 0 {
		h += 1.0
	}
	return h
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func channel8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
