package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/Vernacular-ai/godub"
)

// ContainerCodec decodes and encodes compressed containers (mp3, m4a, flac,
// ogg, ...) through godub, which shells out to ffmpeg.
type ContainerCodec struct{}

// Decode loads the file and returns its PCM content.
func (ContainerCodec) Decode(ctx context.Context, path string) (*Clip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seg, err := godub.NewLoader().Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	samples, err := PCMToFloat32(seg.RawData(), int(seg.SampleWidth()))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	clip := &Clip{
		Samples:    samples,
		SampleRate: int(seg.FrameRate()),
		Channels:   int(seg.Channels()),
	}
	if err := clip.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return clip, nil
}

// Encode writes the clip to path in the given container format
// ("mp3", "flac", ...).
func (ContainerCodec) Encode(ctx context.Context, clip *Clip, path, format string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// The loader parses WAV without ffmpeg, so a WAV round trip is the
	// simplest way to hand PCM to the exporter with a consistent format.
	data, err := EncodeWAV(clip)
	if err != nil {
		return err
	}

	seg, err := godub.NewLoader().Load(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}

	if err := godub.NewExporter(path).WithDstFormat(format).Export(seg); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}

	return nil
}
