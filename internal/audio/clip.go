// Package audio holds decoded PCM clips and the codecs, slicing and
// resampling operations the corpus tools apply to them.
package audio

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidClip is returned when a clip's format fields are unusable.
var ErrInvalidClip = errors.New("invalid clip")

// Clip is a decoded PCM buffer. Samples are interleaved by channel and
// scaled to [-1, 1].
type Clip struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// Validate reports whether the clip can be sliced, resampled or encoded.
func (c *Clip) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil clip", ErrInvalidClip)
	}
	if c.SampleRate < 1 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidClip, c.SampleRate)
	}
	if c.Channels < 1 {
		return fmt.Errorf("%w: channels %d", ErrInvalidClip, c.Channels)
	}
	if len(c.Samples)%c.Channels != 0 {
		return fmt.Errorf("%w: %d samples not divisible by %d channels", ErrInvalidClip, len(c.Samples), c.Channels)
	}

	return nil
}

// Frames returns the number of sample frames (samples per channel).
func (c *Clip) Frames() int {
	if c.Channels < 1 {
		return 0
	}

	return len(c.Samples) / c.Channels
}

// Duration returns the playback length of the clip.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate < 1 {
		return 0
	}

	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// frameAt converts an offset to a frame index, truncating towards zero and
// clamping to [0, Frames()].
func (c *Clip) frameAt(d time.Duration) int {
	if d <= 0 {
		return 0
	}

	frame := int(int64(d) * int64(c.SampleRate) / int64(time.Second))
	if n := c.Frames(); frame > n {
		return n
	}

	return frame
}

// Slice returns the part of the clip between start and end. Offsets past the
// end of the clip are clamped, and end before start yields an empty clip.
// The returned clip shares no memory with c.
func (c *Clip) Slice(start, end time.Duration) *Clip {
	from, to := c.frameAt(start), c.frameAt(end)
	if to < from {
		to = from
	}

	out := make([]float32, (to-from)*c.Channels)
	copy(out, c.Samples[from*c.Channels:to*c.Channels])

	return &Clip{Samples: out, SampleRate: c.SampleRate, Channels: c.Channels}
}

// Milliseconds converts fractional seconds, as reported by speech
// recognizers, to a duration rounded to the nearest millisecond.
func Milliseconds(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds*1000)) * time.Millisecond
}
