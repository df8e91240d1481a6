package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/example/go-tts-corpus/internal/audio"
)

// LockFile is created in the output directory while Prepare runs.
const LockFile = ".ttscorpus.lock"

// ErrOutputLocked is returned when another run holds the output directory.
var ErrOutputLocked = errors.New("output directory is locked by another run")

// Options configure Prepare.
type Options struct {
	InputDir   string
	OutputDir  string
	TrainRatio float64
	SampleRate int
	Rules      Rules
	AudioExt   string
	TextExt    string
	// Seed drives the shuffle. Zero picks a seed from the clock; the seed
	// actually used is reported either way.
	Seed     uint64
	Progress ProgressFunc
}

// Report summarizes a Prepare run.
type Report struct {
	RunID         string      `json:"run_id" yaml:"run_id"`
	InputDir      string      `json:"input_dir" yaml:"input_dir"`
	OutputDir     string      `json:"output_dir" yaml:"output_dir"`
	Seed          uint64      `json:"seed" yaml:"seed"`
	AudioFiles    int         `json:"audio_files" yaml:"audio_files"`
	TextFiles     int         `json:"text_files" yaml:"text_files"`
	Unpaired      []string    `json:"unpaired,omitempty" yaml:"unpaired,omitempty"`
	Duplicates    []string    `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
	Valid         int         `json:"valid" yaml:"valid"`
	Excluded      []Exclusion `json:"excluded,omitempty" yaml:"excluded,omitempty"`
	Train         int         `json:"train" yaml:"train"`
	Val           int         `json:"val" yaml:"val"`
	TrainManifest string      `json:"train_manifest" yaml:"train_manifest"`
	ValManifest   string      `json:"val_manifest" yaml:"val_manifest"`
	Duration      string      `json:"duration" yaml:"duration"`
}

func (o Options) validate() error {
	if o.InputDir == "" || o.OutputDir == "" {
		return errors.New("input and output directories are required")
	}
	if o.TrainRatio < 0 || o.TrainRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidRatio, o.TrainRatio)
	}
	if o.SampleRate < 1 {
		return fmt.Errorf("invalid sample rate: %d", o.SampleRate)
	}
	if o.Rules.MinFileSizeKB < 0 {
		return fmt.Errorf("invalid minimum file size: %v KB", o.Rules.MinFileSizeKB)
	}

	return nil
}

// Prepare runs discovery, validation, splitting and export. The report is
// returned together with any export error so callers can show how far the
// run got.
func Prepare(ctx context.Context, opts Options, codec audio.Codec) (*Report, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	started := time.Now()

	if opts.Seed == 0 {
		opts.Seed = uint64(started.UnixNano())
	}
	report := &Report{
		RunID:     uuid.NewString(),
		InputDir:  opts.InputDir,
		OutputDir: opts.OutputDir,
		Seed:      opts.Seed,
	}
	logger := slog.With("run_id", report.RunID)

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	lock := flock.New(filepath.Join(opts.OutputDir, LockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrOutputLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output lock", "error", err)
		}
	}()

	listing, err := Discover(opts.InputDir, opts.AudioExt, opts.TextExt)
	if err != nil {
		return nil, err
	}
	report.AudioFiles, report.TextFiles, report.Unpaired = listing.AudioCount, listing.TextCount, listing.Unpaired
	report.Duplicates = listing.Duplicates
	logger.Info("discovered files",
		"audio", listing.AudioCount, "text", listing.TextCount,
		"pairs", len(listing.Pairs), "unpaired", len(listing.Unpaired))
	for _, name := range listing.Duplicates {
		logger.Warn("skipping duplicate audio basename", "file", name)
	}

	results, err := Validate(ctx, listing.Pairs, opts.Rules, codec, opts.Progress)
	if err != nil {
		return report, err
	}
	items, excluded := Partition(results)
	report.Valid, report.Excluded = len(items), excluded
	logger.Info("validated pairs", "valid", len(items), "excluded", len(excluded))

	split, err := SplitItems(items, opts.TrainRatio, NewRand(opts.Seed))
	if err != nil {
		return report, err
	}
	report.Train, report.Val = len(split.Train), len(split.Val)

	exported, err := Export(ctx, split, ExportOptions{
		OutputDir:  opts.OutputDir,
		SampleRate: opts.SampleRate,
		Progress:   opts.Progress,
	}, codec)
	report.TrainManifest, report.ValManifest = exported.TrainManifest, exported.ValManifest
	report.Duration = time.Since(started).Round(time.Millisecond).String()
	if err != nil {
		return report, err
	}

	logger.Info("dataset ready", "train", report.Train, "val", report.Val, "seed", report.Seed, "duration", report.Duration)

	return report, nil
}
