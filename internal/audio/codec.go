package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Decoder turns an audio file into a Clip.
type Decoder interface {
	Decode(ctx context.Context, path string) (*Clip, error)
}

// Encoder writes a Clip to a file. The output format follows the file
// extension.
type Encoder interface {
	Encode(ctx context.Context, clip *Clip, path string) error
}

// Codec decodes and encodes audio files.
type Codec interface {
	Decoder
	Encoder
}

// containerCodec is the subset of ContainerCodec FileCodec depends on.
type containerCodec interface {
	Decode(ctx context.Context, path string) (*Clip, error)
	Encode(ctx context.Context, clip *Clip, path, format string) error
}

// FileCodec handles WAV natively and delegates every other extension to a
// container codec.
type FileCodec struct {
	container containerCodec
}

// NewFileCodec returns a FileCodec backed by ContainerCodec.
func NewFileCodec() *FileCodec {
	return &FileCodec{container: ContainerCodec{}}
}

// Format returns the lower-cased extension of path without the dot.
func Format(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Decode implements Decoder.
func (c *FileCodec) Decode(ctx context.Context, path string) (*Clip, error) {
	switch format := Format(path); format {
	case "wav", "wave":
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		clip, err := DecodeWAV(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}

		return clip, nil
	case "":
		return nil, fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	default:
		return c.container.Decode(ctx, path)
	}
}

// Encode implements Encoder.
func (c *FileCodec) Encode(ctx context.Context, clip *Clip, path string) error {
	switch format := Format(path); format {
	case "wav", "wave":
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := EncodeWAV(clip)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}

		return os.WriteFile(path, data, 0o644)
	case "":
		return fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	default:
		return c.container.Encode(ctx, clip, path, format)
	}
}
