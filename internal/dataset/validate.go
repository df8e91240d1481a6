package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/example/go-tts-corpus/internal/audio"
	"github.com/example/go-tts-corpus/internal/text"
)

// ReasonEmptyText is the exclusion reason for a whitespace-only transcript.
const ReasonEmptyText = "empty text"

// Rules are the acceptance criteria applied by Validate.
type Rules struct {
	// MinFileSizeKB rejects audio files smaller than this many kilobytes
	// (1 KB = 1024 bytes) without decoding them.
	MinFileSizeKB float64
}

// Item is an accepted pair together with its normalized transcript.
type Item struct {
	Pair
	Text string
}

// ValidationResult is the outcome of validating one pair. Reason is empty
// for an accepted pair.
type ValidationResult struct {
	Item
	Reason string
	Err    error
}

// Excluded reports whether the pair was rejected.
func (r ValidationResult) Excluded() bool { return r.Reason != "" }

// Exclusion is a rejected audio file and why it was rejected.
type Exclusion struct {
	File   string `json:"file" yaml:"file"`
	Reason string `json:"reason" yaml:"reason"`
}

// ProgressFunc receives progress notifications for a named stage.
type ProgressFunc func(stage string, done, total int)

// Validate checks every pair and returns one result per pair, in order.
// Checks run in order: audio size, audio decode, transcript content. A
// failing pair is recorded and validation moves on; only context
// cancellation stops the loop.
func Validate(ctx context.Context, pairs []Pair, rules Rules, dec audio.Decoder, progress ProgressFunc) ([]ValidationResult, error) {
	results := make([]ValidationResult, 0, len(pairs))
	for i, p := range pairs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := validatePair(ctx, p, rules, dec)
		if res.Excluded() {
			slog.Warn("excluded pair", "file", p.AudioName(), "reason", res.Reason)
		}
		results = append(results, res)

		if progress != nil {
			progress(StageValidate, i+1, len(pairs))
		}
	}

	return results, nil
}

func validatePair(ctx context.Context, p Pair, rules Rules, dec audio.Decoder) ValidationResult {
	res := ValidationResult{Item: Item{Pair: p}}

	info, err := os.Stat(p.AudioPath)
	if err != nil {
		res.Reason, res.Err = fmt.Sprintf("stat audio: %v", err), err
		return res
	}
	if sizeKB := float64(info.Size()) / 1024; sizeKB < rules.MinFileSizeKB {
		res.Reason = fmt.Sprintf("audio too small (%.2fKB)", sizeKB)
		return res
	}

	if _, err := dec.Decode(ctx, p.AudioPath); err != nil {
		res.Reason, res.Err = fmt.Sprintf("decode failed: %v", err), err
		return res
	}

	transcript, err := text.ReadTranscript(p.TextPath)
	switch {
	case errors.Is(err, text.ErrEmptyText):
		res.Reason, res.Err = ReasonEmptyText, err
	case err != nil:
		res.Reason, res.Err = fmt.Sprintf("read transcript: %v", err), err
	default:
		res.Text = transcript
	}

	return res
}

// Partition separates accepted items from exclusions, keeping input order.
func Partition(results []ValidationResult) ([]Item, []Exclusion) {
	var items []Item
	var excluded []Exclusion
	for _, r := range results {
		if r.Excluded() {
			excluded = append(excluded, Exclusion{File: r.AudioName(), Reason: r.Reason})
			continue
		}
		items = append(items, r.Item)
	}

	return items, excluded
}
