package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-tts-corpus/internal/audio"
	"github.com/example/go-tts-corpus/internal/testutil"
)

var errFakeDecode = errors.New("fake: corrupt mp3 frame")

// fakeCodec decodes every file to a short tone unless its name is listed in
// failDecode, and writes real WAV files on Encode.
type fakeCodec struct {
	rate        int
	failDecode  map[string]bool
	failEncode  map[string]bool
	decodeCalls []string
	encodeCalls []string
}

func newFakeCodec() *fakeCodec {
	return &fakeCodec{rate: 22050, failDecode: map[string]bool{}, failEncode: map[string]bool{}}
}

func (f *fakeCodec) Decode(_ context.Context, path string) (*audio.Clip, error) {
	f.decodeCalls = append(f.decodeCalls, filepath.Base(path))
	if f.failDecode[filepath.Base(path)] {
		return nil, errFakeDecode
	}

	return testutil.SineClip(f.rate, 1, f.rate/10), nil
}

func (f *fakeCodec) Encode(_ context.Context, clip *audio.Clip, path string) error {
	f.encodeCalls = append(f.encodeCalls, filepath.Base(path))
	if f.failEncode[filepath.Base(path)] {
		return errors.New("fake: disk full")
	}

	data, err := audio.EncodeWAV(clip)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

func (f *fakeCodec) decodeCount(name string) int {
	n := 0
	for _, c := range f.decodeCalls {
		if c == name {
			n++
		}
	}

	return n
}

// writePair creates <dir>/<base>.mp3 of audioBytes bytes and <dir>/<base>.txt.
func writePair(t *testing.T, dir, base string, audioBytes int, transcript string) {
	t.Helper()

	testutil.WriteFile(t, filepath.Join(dir, base+".mp3"), make([]byte, audioBytes))
	testutil.WriteText(t, filepath.Join(dir, base+".txt"), transcript)
}

// readLines returns the non-empty lines of a filelist.
func readLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	var lines []string
	for _, l := range strings.Split(string(data), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}

	return lines
}

const kb = 1024
