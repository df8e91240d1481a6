package asr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DecodeTranscription parses a Whisper JSON result. Segment boundaries are
// returned as reported, even when a segment ends before it starts.
func DecodeTranscription(r io.Reader) (Transcription, error) {
	var t Transcription
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return Transcription{}, fmt.Errorf("decode transcription: %w", err)
	}

	return t, nil
}

// ReadTranscription loads a Whisper JSON result from disk.
func ReadTranscription(path string) (Transcription, error) {
	f, err := os.Open(path)
	if err != nil {
		return Transcription{}, err
	}
	defer f.Close()

	t, err := DecodeTranscription(f)
	if err != nil {
		return Transcription{}, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// JSONFile is a Recognizer that returns a previously saved Whisper result,
// so a recording can be re-sliced without running the model again.
type JSONFile struct {
	path string
}

// NewJSONFile returns a recognizer reading the result stored at path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Transcribe ignores the audio path and options and returns the stored result.
func (j *JSONFile) Transcribe(ctx context.Context, _ string, _ Options) (Transcription, error) {
	if err := ctx.Err(); err != nil {
		return Transcription{}, err
	}

	return ReadTranscription(j.path)
}
