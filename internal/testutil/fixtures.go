package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/go-tts-corpus/internal/audio"
)

// SineClip returns a 440 Hz tone of the given length.
func SineClip(rate, channels, frames int) *audio.Clip {
	samples := make([]float32, frames*channels)
	for f := 0; f < frames; f++ {
		v := float32(0.3 * math.Sin(2*math.Pi*440*float64(f)/float64(rate)))
		for c := 0; c < channels; c++ {
			samples[f*channels+c] = v
		}
	}

	return &audio.Clip{Samples: samples, SampleRate: rate, Channels: channels}
}

// WriteWAV writes a mono 16-bit tone of the given length to path and
// returns the file size in bytes.
func WriteWAV(tb testing.TB, path string, rate, frames int) int64 {
	tb.Helper()

	data, err := audio.EncodeWAV(SineClip(rate, 1, frames))
	if err != nil {
		tb.Fatalf("encode fixture %s: %v", path, err)
	}
	WriteFile(tb, path, data)

	return int64(len(data))
}

// WriteText writes a transcript fixture.
func WriteText(tb testing.TB, path, content string) {
	tb.Helper()
	WriteFile(tb, path, []byte(content))
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(tb testing.TB, path string, data []byte) {
	tb.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
}
