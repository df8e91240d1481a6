// Package segment cuts a long recording into sentence-level clips using the
// timestamps reported by a speech recognizer.
package segment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/go-tts-corpus/internal/asr"
	"github.com/example/go-tts-corpus/internal/audio"
)

// DefaultFormat is the container written for each clip.
const DefaultFormat = "mp3"

// Options configure Extract.
type Options struct {
	// Source is the recording to segment.
	Source string
	// OutputDir receives the clips and their transcripts.
	OutputDir string
	// Format is the clip container, e.g. "mp3" or "wav".
	Format string
	ASR    asr.Options
	// Progress, when set, is called after every written clip.
	Progress func(done, total int)
}

// Clip describes one written segment.
type Clip struct {
	Index     int    `json:"index" yaml:"index"`
	SegmentID int    `json:"segment_id" yaml:"segment_id"`
	StartMs   int64  `json:"start_ms" yaml:"start_ms"`
	EndMs     int64  `json:"end_ms" yaml:"end_ms"`
	Text      string `json:"text" yaml:"text"`
	AudioPath string `json:"audio_path" yaml:"audio_path"`
	TextPath  string `json:"text_path" yaml:"text_path"`
}

// Report summarizes an Extract run.
type Report struct {
	RunID     string `json:"run_id" yaml:"run_id"`
	Source    string `json:"source" yaml:"source"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	Language  string `json:"language,omitempty" yaml:"language,omitempty"`
	Segments  int    `json:"segments" yaml:"segments"`
	Clips     []Clip `json:"clips" yaml:"clips"`
	Duration  string `json:"duration" yaml:"duration"`
}

// BaseName returns the file name, without extension, of the i-th (0-based)
// segment with the given recognizer id.
func BaseName(i, segmentID int) string {
	return fmt.Sprintf("sentence_%d_%d", i+1, segmentID)
}

func (o Options) format() string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(o.Format), "."))
	if f == "" {
		return DefaultFormat
	}

	return f
}

// Extract decodes opts.Source, transcribes it with rec and writes one audio
// clip plus one transcript per recognized segment. Segment boundaries are used
// as reported. The first failure stops the run; clips already written stay on
// disk and are listed in the returned report.
func Extract(ctx context.Context, opts Options, rec asr.Recognizer, codec audio.Codec) (*Report, error) {
	if opts.Source == "" || opts.OutputDir == "" {
		return nil, errors.New("source and output directory are required")
	}
	if rec == nil {
		return nil, errors.New("recognizer is required")
	}
	started := time.Now()
	format := opts.format()

	report := &Report{RunID: uuid.NewString(), Source: opts.Source, OutputDir: opts.OutputDir}
	logger := slog.With("run_id", report.RunID)

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	recording, err := codec.Decode(ctx, opts.Source)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", opts.Source, err)
	}
	logger.Info("loaded recording", "source", opts.Source,
		"duration", recording.Duration().String(), "sample_rate", recording.SampleRate)

	result, err := rec.Transcribe(ctx, opts.Source, opts.ASR)
	if err != nil {
		return nil, fmt.Errorf("transcribe %s: %w", opts.Source, err)
	}
	report.Language, report.Segments = result.Language, len(result.Segments)
	logger.Info("transcribed recording", "segments", len(result.Segments), "language", result.Language)

	for i, seg := range result.Segments {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		clip, err := writeSegment(ctx, opts.OutputDir, format, i, seg, recording, codec)
		if err != nil {
			return report, fmt.Errorf("segment %d (id %d): %w", i+1, seg.ID, err)
		}
		report.Clips = append(report.Clips, clip)
		logger.Debug("wrote segment", "index", clip.Index, "start_ms", clip.StartMs, "end_ms", clip.EndMs, "text", seg.Text)

		if opts.Progress != nil {
			opts.Progress(i+1, len(result.Segments))
		}
	}

	report.Duration = time.Since(started).Round(time.Millisecond).String()
	logger.Info("segmentation done", "clips", len(report.Clips), "output_dir", opts.OutputDir, "duration", report.Duration)

	return report, nil
}

func writeSegment(ctx context.Context, dir, format string, i int, seg asr.Segment, recording *audio.Clip, codec audio.Codec) (Clip, error) {
	start, end := seg.StartOffset(), seg.EndOffset()
	base := filepath.Join(dir, BaseName(i, seg.ID))

	out := Clip{
		Index:     i + 1,
		SegmentID: seg.ID,
		StartMs:   start.Milliseconds(),
		EndMs:     end.Milliseconds(),
		Text:      seg.Text,
		AudioPath: base + "." + format,
		TextPath:  base + ".txt",
	}

	if err := os.WriteFile(out.TextPath, []byte(seg.Text), 0o644); err != nil {
		return out, fmt.Errorf("write transcript: %w", err)
	}
	if err := codec.Encode(ctx, recording.Slice(start, end), out.AudioPath); err != nil {
		return out, fmt.Errorf("write audio: %w", err)
	}

	return out, nil
}
