package dataset

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/example/go-tts-corpus/internal/audio"
	"github.com/example/go-tts-corpus/internal/text"
)

// Output layout under the output directory.
const (
	WavDir        = "wavs"
	FilelistDir   = "filelists"
	TrainManifest = "train.txt"
	ValManifest   = "val.txt"
)

// Stage names reported through ProgressFunc.
const (
	StageValidate = "validate"
	StageTrain    = "train"
	StageVal      = "val"
)

// ExportOptions control Export.
type ExportOptions struct {
	OutputDir  string
	SampleRate int
	Progress   ProgressFunc
}

// ExportResult describes what Export wrote.
type ExportResult struct {
	TrainManifest string
	ValManifest   string
	Written       int
}

// Export resamples every item of the split into <out>/wavs and writes the
// train and validation filelists. It fails fast: the first error stops the
// run and is returned; files written so far are kept.
func Export(ctx context.Context, split Split, opts ExportOptions, codec audio.Codec) (ExportResult, error) {
	if opts.SampleRate < 1 {
		return ExportResult{}, fmt.Errorf("invalid sample rate: %d", opts.SampleRate)
	}

	wavDir := filepath.Join(opts.OutputDir, WavDir)
	listDir := filepath.Join(opts.OutputDir, FilelistDir)
	for _, dir := range []string{wavDir, listDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ExportResult{}, fmt.Errorf("create output dir: %w", err)
		}
	}

	res := ExportResult{
		TrainManifest: filepath.Join(listDir, TrainManifest),
		ValManifest:   filepath.Join(listDir, ValManifest),
	}

	sets := []struct {
		stage    string
		manifest string
		items    []Item
	}{
		{StageTrain, res.TrainManifest, split.Train},
		{StageVal, res.ValManifest, split.Val},
	}
	for _, set := range sets {
		n, err := exportSet(ctx, set.stage, set.manifest, set.items, opts, codec)
		res.Written += n
		if err != nil {
			return res, err
		}
		slog.Info("wrote filelist", "stage", set.stage, "path", set.manifest, "entries", n)
	}

	return res, nil
}

// exportSet writes one filelist. Lines already written are flushed even when
// a later item fails.
func exportSet(ctx context.Context, stage, manifest string, items []Item, opts ExportOptions, codec audio.Codec) (n int, err error) {
	f, err := os.Create(manifest)
	if err != nil {
		return 0, fmt.Errorf("create filelist: %w", err)
	}
	w := bufio.NewWriter(f)
	defer func() {
		err = errors.Join(err, w.Flush(), f.Close())
	}()

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		rel, err := exportItem(ctx, item, opts, codec)
		if err != nil {
			return n, fmt.Errorf("export %s: %w", item.AudioName(), err)
		}
		if _, err := w.WriteString(text.ManifestLine(rel, item.Text) + "\n"); err != nil {
			return n, fmt.Errorf("write filelist: %w", err)
		}
		n++

		if opts.Progress != nil {
			opts.Progress(stage, i+1, len(items))
		}
	}

	return n, nil
}

// exportItem transcodes one clip and returns its manifest-relative path.
func exportItem(ctx context.Context, item Item, opts ExportOptions, codec audio.Codec) (string, error) {
	clip, err := codec.Decode(ctx, item.AudioPath)
	if err != nil {
		return "", err
	}

	resampled, err := audio.Resample(clip, opts.SampleRate)
	if err != nil {
		return "", err
	}

	name := item.Base + ".wav"
	if err := codec.Encode(ctx, resampled, filepath.Join(opts.OutputDir, WavDir, name)); err != nil {
		return "", err
	}
	slog.Debug("exported clip", "file", item.AudioName(), "wav", name, "source_rate", clip.SampleRate)

	// Filelists always use forward slashes.
	return path.Join(WavDir, name), nil
}
