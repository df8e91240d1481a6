package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cwbudde/wav"
	goaudio "github.com/go-audio/audio"
)

// BitDepth is the sample width of every WAV the corpus tools write.
const BitDepth = 16

const wavFormatPCM = 1

// EncodeWAV encodes the clip as 16-bit PCM WAV at the clip's own sample rate
// and channel count.
func EncodeWAV(clip *Clip) ([]byte, error) {
	if err := clip.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	// wav.NewEncoder requires an io.WriteSeeker; bytes.Buffer is not one.
	sw := &seekBuffer{buf: &buf}

	enc := wav.NewEncoder(sw, clip.SampleRate, BitDepth, clip.Channels, wavFormatPCM)

	pcmBuf := &goaudio.Float32Buffer{
		Data:           clip.Samples,
		Format:         &goaudio.Format{SampleRate: clip.SampleRate, NumChannels: clip.Channels},
		SourceBitDepth: BitDepth,
	}

	if err := enc.Write(pcmBuf); err != nil {
		return nil, fmt.Errorf("writing PCM: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("closing encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// seekBuffer wraps a bytes.Buffer to satisfy io.WriteSeeker. The encoder
// seeks back once to patch the RIFF and data chunk sizes.
type seekBuffer struct {
	buf *bytes.Buffer
	pos int
}

func (s *seekBuffer) Write(p []byte) (int, error) {
	if s.pos == s.buf.Len() {
		n, err := s.buf.Write(p)
		s.pos += n
		return n, err
	}

	data := s.buf.Bytes()
	n := copy(data[s.pos:], p)
	if n < len(p) {
		s.buf.Write(p[n:])
	}
	s.pos += len(p)

	return len(p), nil
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var newPos int
	switch whence {
	case io.SeekStart:
		newPos = int(offset)
	case io.SeekCurrent:
		newPos = s.pos + int(offset)
	case io.SeekEnd:
		newPos = s.buf.Len() + int(offset)
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if newPos < 0 || newPos > s.buf.Len() {
		return 0, fmt.Errorf("seek to %d out of range", newPos)
	}
	s.pos = newPos

	return int64(newPos), nil
}
