package audio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for audio files without a decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// AudioDecoder defines the interface for all audio format decoders
type AudioDecoder interface {
	// ReadChunk reads up to numSamples mono samples as float64 in [-1, 1].
	// Returns io.EOF when no samples remain.
	ReadChunk(numSamples int) ([]float64, error)

	// SampleRate returns the audio sample rate in Hz
	SampleRate() int

	// NumChannels returns the number of channels in the source file
	NumChannels() int

	// Close closes the decoder and releases resources
	Close() error
}

// OpenDecoder picks a decoder from the file extension.
func OpenDecoder(filename string) (AudioDecoder, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav", ".wave":
		return NewWAVDecoder(filename)
	case ".mp3":
		return NewMP3Decoder(filename)
	case ".flac":
		return NewFLACDecoder(filename)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ReadAll decodes the whole file to mono samples.
func ReadAll(filename string) ([]float64, int, error) {
	dec, err := OpenDecoder(filename)
	if err != nil {
		return nil, 0, err
	}
	defer dec.Close()

	const chunkSize = 16384
	var samples []float64
	for {
		chunk, err := dec.ReadChunk(chunkSize)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("reading %s: %w", filepath.Base(filename), err)
		}
		samples = append(samples, chunk...)
	}

	if len(samples) == 0 {
		return nil, 0, fmt.Errorf("no audio data in %s", filepath.Base(filename))
	}
	return samples, dec.SampleRate(), nil
}
