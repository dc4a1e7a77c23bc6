package audio

import (
	"fmt"
	"math"

	"github.com/argusdusty/gofft"
)

// ApplyHanning applies a Hanning window to the input data
func ApplyHanning(data []float64) []float64 {
	windowed := make([]float64, len(data))
	n := len(data)
	if n == 1 {
		copy(windowed, data)
		return windowed
	}
	for i := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = data[i] * window
	}
	return windowed
}

// Processor runs windowed FFTs of a fixed size.
type Processor struct {
	size       int
	sampleRate int
	windowSum  float64
}

// NewProcessor creates a processor for power-of-two size windows.
func NewProcessor(size, sampleRate int) (*Processor, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("FFT size %d is not a power of two", size)
	}
	ones := make([]float64, size)
	for i := range ones {
		ones[i] = 1
	}
	var sum float64
	for _, w := range ApplyHanning(ones) {
		sum += w
	}
	return &Processor{size: size, sampleRate: sampleRate, windowSum: sum}, nil
}

// Size returns the FFT window length.
func (p *Processor) Size() int { return p.size }

// BinWidth returns the width of one frequency bin in Hz.
func (p *Processor) BinWidth() float64 {
	return float64(p.sampleRate) / float64(p.size)
}

// Magnitudes returns the amplitude spectrum of samples, zero-padded to the
// window size. Bin k is scaled so a full-scale sine centred on it reads ~1.
func (p *Processor) Magnitudes(samples []float64) ([]float64, error) {
	chunk := samples
	if len(chunk) != p.size {
		padded := make([]float64, p.size)
		copy(padded, chunk)
		chunk = padded
	}

	coeffs := gofft.Float64ToComplex128Array(ApplyHanning(chunk))
	if err := gofft.FFT(coeffs); err != nil {
		return nil, fmt.Errorf("FFT computation failed: %w", err)
	}

	half := p.size/2 + 1
	mags := make([]float64, half)
	scale := 2 / p.windowSum
	for k := 0; k < half; k++ {
		re, im := real(coeffs[k]), imag(coeffs[k])
		mags[k] = math.Sqrt(re*re+im*im) * scale
	}
	return mags, nil
}

// BandAmplitude combines the bins whose centre frequency lies in
// [band.Low, band.High). Bands narrower than one bin fall back to the bin
// nearest the band centre.
func (p *Processor) BandAmplitude(mags []float64, band Band) float64 {
	width := p.BinWidth()
	lo := int(math.Ceil(band.Low / width))
	hi := int(math.Ceil(band.High/width)) - 1
	if hi >= len(mags) {
		hi = len(mags) - 1
	}

	if lo > hi {
		k := int(math.Round(band.Center() / width))
		if k >= len(mags) || k < 0 {
			return 0
		}
		return mags[k]
	}

	var energy float64
	for k := lo; k <= hi; k++ {
		energy += mags[k] * mags[k]
	}
	return math.Sqrt(energy)
}
