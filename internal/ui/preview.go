package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// PreviewConfig holds the size of the terminal preview
type PreviewConfig struct {
	Width  int // Width in terminal cells
	Height int // Height in terminal cells
}

// DefaultPreviewConfig returns a sensible default preview size
// Using 72x20 1.8:1 (slightly wider than 16:9 but very close)
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Width:  72,
		Height: 20,
	}
}

// DownsampleImage averages each cell-sized region of img into one colour.
func DownsampleImage(img image.Image, config PreviewConfig) [][]color.RGBA {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()
	if config.Width <= 0 || config.Height <= 0 || srcWidth == 0 || srcHeight == 0 {
		return nil
	}

	cellWidth := max(srcWidth/config.Width, 1)
	cellHeight := max(srcHeight/config.Height, 1)

	preview := make([][]color.RGBA, config.Height)
	for row := 0; row < config.Height; row++ {
		preview[row] = make([]color.RGBA, config.Width)
		for col := 0; col < config.Width; col++ {
			srcX := bounds.Min.X + col*cellWidth
			srcY := bounds.Min.Y + row*cellHeight

			var sumR, sumG, sumB uint32
			pixelCount := 0
			for y := srcY; y < srcY+cellHeight && y < bounds.Max.Y; y++ {
				for x := srcX; x < srcX+cellWidth && x < bounds.Max.X; x++ {
					// RGBA() returns 16-bit values
					r, g, b, _ := img.At(x, y).RGBA()
					sumR += r >> 8
					sumG += g >> 8
					sumB += b >> 8
					pixelCount++
				}
			}

			if pixelCount > 0 {
				preview[row][col] = color.RGBA{
					R: uint8(sumR / uint32(pixelCount)),
					G: uint8(sumG / uint32(pixelCount)),
					B: uint8(sumB / uint32(pixelCount)),
					A: 255,
				}
			}
		}
	}

	return preview
}

// RenderPreview draws a colour grid with 24-bit ANSI background colours,
// one space per cell.
func RenderPreview(preview [][]color.RGBA) string {
	if len(preview) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("  Scene Preview:\n")
	b.WriteString("  ┌" + strings.Repeat("─", len(preview[0])) + "┐\n")
	for _, row := range preview {
		b.WriteString("  │")
		for _, pixel := range row {
			fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm \x1b[0m", pixel.R, pixel.G, pixel.B)
		}
		b.WriteString("│\n")
	}
	b.WriteString("  └" + strings.Repeat("─", len(preview[0])) + "┘\n")

	return b.String()
}
