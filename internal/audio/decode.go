package audio

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cwbudde/wav"
)

// ErrUnsupportedFormat is returned for audio the codecs cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// DecodeWAV decodes PCM WAV bytes of any sample rate and channel count.
func DecodeWAV(data []byte) (*Clip, error) {
	if len(data) == 0 {
		return nil, errors.New("empty WAV input")
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}
	if dec.NumChans < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, dec.NumChans)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading PCM data: %w", err)
	}

	clip := &Clip{
		Samples:    buf.Data,
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
	}
	if err := clip.Validate(); err != nil {
		return nil, err
	}

	return clip, nil
}
