package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVDecoder implements AudioDecoder for PCM WAV files
type WAVDecoder struct {
	decoder    *wav.Decoder
	file       *os.File
	buf        *audio.IntBuffer
	sampleRate int
	numChans   int
	maxVal     float64
}

// NewWAVDecoder opens filename and positions the decoder at the PCM data.
func NewWAVDecoder(filename string) (*WAVDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("invalid WAV file")
	}

	if err := decoder.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to seek to PCM data: %w", err)
	}

	numChans := int(decoder.NumChans)
	if numChans < 1 {
		numChans = 1
	}

	return &WAVDecoder{
		decoder:    decoder,
		file:       f,
		sampleRate: int(decoder.SampleRate),
		numChans:   numChans,
		maxVal:     float64(audio.IntMaxSignedValue(int(decoder.BitDepth))),
		buf: &audio.IntBuffer{
			Format: &audio.Format{NumChannels: numChans, SampleRate: int(decoder.SampleRate)},
		},
	}, nil
}

// ReadChunk reads up to numSamples frames and downmixes them to mono.
func (d *WAVDecoder) ReadChunk(numSamples int) ([]float64, error) {
	// Interleaved data: numSamples frames × numChans channels
	want := numSamples * d.numChans
	if cap(d.buf.Data) < want {
		d.buf.Data = make([]int, want)
	}
	d.buf.Data = d.buf.Data[:want]

	n, err := d.decoder.PCMBuffer(d.buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read PCM buffer: %w", err)
	}
	if n == 0 {
		return nil, io.EOF
	}

	frames := n / d.numChans
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < d.numChans; ch++ {
			sum += float64(d.buf.Data[i*d.numChans+ch])
		}
		samples[i] = sum / float64(d.numChans) / d.maxVal
	}
	return samples, nil
}

// SampleRate returns the sample rate
func (d *WAVDecoder) SampleRate() int {
	return d.sampleRate
}

// NumChannels returns the number of audio channels
func (d *WAVDecoder) NumChannels() int {
	return d.numChans
}

// Close closes the decoder and releases resources
func (d *WAVDecoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
