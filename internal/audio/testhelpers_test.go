package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeSineWAV writes a 16-bit WAV of a sine wave and returns its path.
func writeSineWAV(t *testing.T, freq, amplitude, seconds float64, sampleRate, channels int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sine.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()

	frames := int(seconds * float64(sampleRate))
	data := make([]int, frames*channels)
	for i := 0; i < frames; i++ {
		v := amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
		for ch := 0; ch < channels; ch++ {
			data[i*channels+ch] = int(v * 32767)
		}
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing fixture: %v", err)
	}
	return path
}
