package audio

import (
	"fmt"
	"math"

	libsamplerate "github.com/keereets/go-libsamplerate"
)

// ResampleQuality selects the converter used by Resample.
var ResampleQuality = libsamplerate.SincMediumQuality

// Resample converts the clip to the target sample rate. A clip already at
// that rate is returned as is.
func Resample(clip *Clip, targetRate int) (*Clip, error) {
	if err := clip.Validate(); err != nil {
		return nil, err
	}
	if targetRate < 1 {
		return nil, fmt.Errorf("invalid target sample rate: %d", targetRate)
	}
	if clip.SampleRate == targetRate {
		return clip, nil
	}

	ratio := float64(targetRate) / float64(clip.SampleRate)
	if !libsamplerate.IsValidRatio(ratio) {
		return nil, fmt.Errorf("resample %d Hz -> %d Hz: ratio %.4f out of range", clip.SampleRate, targetRate, ratio)
	}

	frames := clip.Frames()
	if frames == 0 {
		return &Clip{SampleRate: targetRate, Channels: clip.Channels}, nil
	}

	outFrames := int64(math.Ceil(float64(frames)*ratio)) + 1
	data := &libsamplerate.SrcData{
		DataIn:       clip.Samples,
		DataOut:      make([]float32, outFrames*int64(clip.Channels)),
		InputFrames:  int64(frames),
		OutputFrames: outFrames,
		SrcRatio:     ratio,
	}

	if err := libsamplerate.Simple(data, ResampleQuality, clip.Channels); err != nil {
		return nil, fmt.Errorf("resample %d Hz -> %d Hz: %w", clip.SampleRate, targetRate, err)
	}

	return &Clip{
		Samples:    data.DataOut[:data.OutputFramesGen*int64(clip.Channels)],
		SampleRate: targetRate,
		Channels:   clip.Channels,
	}, nil
}
