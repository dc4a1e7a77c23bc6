package audio

import "math"

// LowestFrequency is where the first bar's band starts, in Hz.
const LowestFrequency = 16.0

// Band is a frequency interval in Hz.
type Band struct {
	Low  float64
	High float64
}

// Center returns the geometric centre of the band.
func (b Band) Center() float64 {
	return math.Sqrt(b.Low * b.High)
}

// BandAllocator hands out contiguous bands covering ten octaves above
// LowestFrequency, one per bar. Each band is noteStep semitones wide where
// noteStep = 120/barCount.
//
// The bands are computed as a running product: every band starts where
// the previous one ended. Keep it that way; a closed-form power drifts
// from the folded values in the last bits.
type BandAllocator struct {
	step float64
	high float64
}

// NewBandAllocator prepares an allocator for barCount bars.
func NewBandAllocator(barCount int) *BandAllocator {
	noteStep := 120.0 / float64(barCount)
	semitone := math.Pow(2, 1.0/12.0)
	return &BandAllocator{
		step: math.Pow(semitone, noteStep),
		high: LowestFrequency,
	}
}

// Step is the ratio between a band's high and low edge.
func (a *BandAllocator) Step() float64 {
	return a.step
}

// Next returns the band following the last one handed out.
func (a *BandAllocator) Next() Band {
	low := a.high
	a.high = low * a.step
	return Band{Low: low, High: a.high}
}

// Bands folds an allocator over barCount bars.
func Bands(barCount int) []Band {
	alloc := NewBandAllocator(barCount)
	bands := make([]Band, barCount)
	for i := range bands {
		bands[i] = alloc.Next()
	}
	return bands
}
