package asr

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDecodeTranscription(t *testing.T) {
	tr, err := DecodeTranscription(strings.NewReader(sampleWhisperJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tr.Language != "ko" {
		t.Errorf("Language = %q, want ko", tr.Language)
	}
	if len(tr.Segments) != 3 {
		t.Fatalf("len(Segments) = %d, want 3", len(tr.Segments))
	}

	seg := tr.Segments[1]
	if seg.ID != 1 || seg.Text != " 오늘은 날씨가 좋네요." {
		t.Errorf("segment 1 = %+v", seg)
	}
	if len(seg.Words) != 3 || seg.Words[2].Word != " 좋네요." {
		t.Errorf("segment 1 words = %+v", seg.Words)
	}
	if got := seg.StartOffset(); got != 1520*time.Millisecond {
		t.Errorf("StartOffset() = %v, want 1.52s", got)
	}
	if got := tr.Segments[2].EndOffset(); got != 5005*time.Millisecond {
		t.Errorf("EndOffset() = %v, want 5.005s", got)
	}
}

func TestDecodeTranscription_Malformed(t *testing.T) {
	if _, err := DecodeTranscription(strings.NewReader(`{"segments": [`)); err == nil {
		t.Fatal("expected error")
	}
}

func TestDecodeTranscription_KeepsInvertedBoundaries(t *testing.T) {
	input := `{"segments": [{"id": 0, "start": 2.0, "end": 1.0, "text": "x"}]}`

	tr, err := DecodeTranscription(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Segments) != 1 || tr.Segments[0].Start != 2.0 || tr.Segments[0].End != 1.0 {
		t.Errorf("segments = %+v, want boundaries as reported", tr.Segments)
	}
}

func TestJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	if err := os.WriteFile(path, []byte(sampleWhisperJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	tr, err := NewJSONFile(path).Transcribe(context.Background(), "ignored.mp3", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Segments) != 3 {
		t.Errorf("len(Segments) = %d, want 3", len(tr.Segments))
	}
}

func TestJSONFile_Missing(t *testing.T) {
	_, err := NewJSONFile(filepath.Join(t.TempDir(), "missing.json")).Transcribe(context.Background(), "", Options{})
	if !os.IsNotExist(err) {
		t.Fatalf("error = %v, want not-exist", err)
	}
}
