package testutil

import (
	"encoding/binary"
	"errors"
	"os"
	"testing"
)

// AssertValidWAV checks that data is a 16-bit PCM WAV file at the expected
// sample rate with at least one sample.
func AssertValidWAV(tb testing.TB, data []byte, wantRate int) {
	tb.Helper()

	if len(data) < 44 {
		tb.Fatalf("WAV data too short: %d bytes", len(data))
	}

	if string(data[0:4]) != "RIFF" {
		tb.Fatalf("WAV: missing RIFF header (got %q)", string(data[0:4]))
	}

	if string(data[8:12]) != "WAVE" {
		tb.Fatalf("WAV: missing WAVE marker (got %q)", string(data[8:12]))
	}

	if audioFmt := binary.LittleEndian.Uint16(data[20:22]); audioFmt != 1 {
		tb.Fatalf("WAV: expected PCM format (1), got %d", audioFmt)
	}

	if rate := binary.LittleEndian.Uint32(data[24:28]); int(rate) != wantRate {
		tb.Fatalf("WAV: expected sample rate %d, got %d", wantRate, rate)
	}

	if bitDepth := binary.LittleEndian.Uint16(data[34:36]); bitDepth != 16 {
		tb.Fatalf("WAV: expected 16-bit depth, got %d", bitDepth)
	}

	dataSize, err := findDataChunkSize(data)
	if err != nil {
		tb.Fatalf("WAV: %v", err)
	}
	if dataSize == 0 {
		tb.Fatal("WAV: data chunk contains zero samples")
	}
}

// AssertValidWAVFile reads path and applies AssertValidWAV.
func AssertValidWAVFile(tb testing.TB, path string, wantRate int) {
	tb.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}
	AssertValidWAV(tb, data, wantRate)
}

// findDataChunkSize walks the WAV chunk list to locate the "data" sub-chunk
// and returns its size in bytes.
func findDataChunkSize(data []byte) (uint32, error) {
	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])

		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		if id == "data" {
			return size, nil
		}

		offset += 8 + int(size)
		if size%2 != 0 {
			offset++
		}
	}

	return 0, errors.New("data chunk not found in WAV")
}
