// Package asr wraps the speech recognizers used to segment long recordings.
//
// Results follow Whisper's JSON layout: segments carry an id, start and end
// offsets in fractional seconds, the recognized text and optional word-level
// timestamps.
package asr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/go-tts-corpus/internal/audio"
)

// ErrUnknownBackend is returned by NewRecognizer for an unsupported backend.
var ErrUnknownBackend = errors.New("unknown recognizer backend")

// Backend names accepted by NewRecognizer.
const (
	BackendWhisperCLI  = "whisper-cli"
	BackendWhisperJSON = "whisper-json"
)

// Word is a single recognized word with its timing.
type Word struct {
	Word        string  `json:"word"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability"`
}

// Segment is one recognized stretch of speech, usually a sentence.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// StartOffset returns the segment start as a millisecond-precision offset.
func (s Segment) StartOffset() time.Duration { return audio.Milliseconds(s.Start) }

// EndOffset returns the segment end as a millisecond-precision offset.
func (s Segment) EndOffset() time.Duration { return audio.Milliseconds(s.End) }

// Transcription is a recognizer's full result for one recording.
type Transcription struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// Options control a transcription run.
type Options struct {
	// Model is the recognizer model name, e.g. "base".
	Model string
	// Language is the spoken language code, e.g. "ko". Empty lets the model detect it.
	Language string
	// Task is "transcribe" or "translate".
	Task string
	// WordTimestamps requests word-level timing.
	WordTimestamps bool
}

// Recognizer transcribes an audio file into timed segments.
type Recognizer interface {
	Transcribe(ctx context.Context, audioPath string, opts Options) (Transcription, error)
}

// NormalizeBackend validates a backend name, defaulting to the whisper CLI.
func NormalizeBackend(raw string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(raw))
	switch backend {
	case "", "whisper", BackendWhisperCLI:
		return BackendWhisperCLI, nil
	case "json", BackendWhisperJSON:
		return BackendWhisperJSON, nil
	default:
		return "", fmt.Errorf("%w %q (expected %s|%s)", ErrUnknownBackend, raw, BackendWhisperCLI, BackendWhisperJSON)
	}
}

// BackendOptions configure the recognizer returned by NewRecognizer.
type BackendOptions struct {
	// WhisperPath is the whisper executable used by the whisper-cli backend.
	WhisperPath string
	// TranscriptJSON is the result file read by the whisper-json backend.
	TranscriptJSON string
}

// NewRecognizer builds the recognizer for the named backend.
func NewRecognizer(backend string, opts BackendOptions) (Recognizer, error) {
	name, err := NormalizeBackend(backend)
	if err != nil {
		return nil, err
	}

	switch name {
	case BackendWhisperJSON:
		if opts.TranscriptJSON == "" {
			return nil, fmt.Errorf("backend %s requires a transcript JSON path", BackendWhisperJSON)
		}
		return NewJSONFile(opts.TranscriptJSON), nil
	default:
		return NewWhisperCLI(opts.WhisperPath), nil
	}
}
