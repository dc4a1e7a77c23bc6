package audio

import (
	"fmt"
	"math"
	"sync"
)

// Spectrogram holds one amplitude spectrum per animation frame.
type Spectrogram struct {
	FPS        int
	SampleRate int
	Frames     [][]float64

	processor *Processor
}

// Duration returns the length of the analysed audio in seconds.
func (s *Spectrogram) Duration() float64 {
	return float64(len(s.Frames)) / float64(s.FPS)
}

// BandSeries returns the raw band amplitude for every frame.
func (s *Spectrogram) BandSeries(band Band) []float64 {
	series := make([]float64, len(s.Frames))
	for i, mags := range s.Frames {
		series[i] = s.processor.BandAmplitude(mags, band)
	}
	return series
}

// Analyze slices samples into one FFT window per animation frame, each
// window centred on the frame's timestamp.
func Analyze(samples []float64, sampleRate, fps, fftSize int) (*Spectrogram, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", fps)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	proc, err := NewProcessor(fftSize, sampleRate)
	if err != nil {
		return nil, err
	}

	hop := float64(sampleRate) / float64(fps)
	numFrames := int(math.Ceil(float64(len(samples)) / hop))

	spec := &Spectrogram{
		FPS:        fps,
		SampleRate: sampleRate,
		Frames:     make([][]float64, numFrames),
		processor:  proc,
	}

	window := make([]float64, fftSize)
	for f := 0; f < numFrames; f++ {
		start := int(math.Round(float64(f)*hop)) - fftSize/2
		for i := range window {
			idx := start + i
			if idx >= 0 && idx < len(samples) {
				window[i] = samples[idx]
			} else {
				window[i] = 0
			}
		}
		mags, err := proc.Magnitudes(window)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", f, err)
		}
		spec.Frames[f] = mags
	}

	return spec, nil
}

// SpectrumCache decodes and analyses each audio file once, so baking many
// bars from the same file does not repeat the work. Safe for concurrent use.
type SpectrumCache struct {
	mu      sync.Mutex
	fps     int
	fftSize int
	entries map[string]*Spectrogram
}

// NewSpectrumCache creates an empty cache for the given analysis settings.
func NewSpectrumCache(fps, fftSize int) *SpectrumCache {
	return &SpectrumCache{
		fps:     fps,
		fftSize: fftSize,
		entries: make(map[string]*Spectrogram),
	}
}

// Get returns the spectrogram of filename, analysing it on first use.
func (c *SpectrumCache) Get(filename string) (*Spectrogram, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if spec, ok := c.entries[filename]; ok {
		return spec, nil
	}

	samples, sampleRate, err := ReadAll(filename)
	if err != nil {
		return nil, err
	}
	spec, err := Analyze(samples, sampleRate, c.fps, c.fftSize)
	if err != nil {
		return nil, fmt.Errorf("analysing %s: %w", filename, err)
	}
	c.entries[filename] = spec
	return spec, nil
}

// Len returns the number of cached files.
func (c *SpectrumCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops every cached spectrogram.
func (c *SpectrumCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Spectrogram)
}
