package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/go-tts-corpus/internal/audio"
	"github.com/example/go-tts-corpus/internal/dataset"
)

func newPrepareCmd() *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Validate, split and resample paired audio/transcript files into a training dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			progress := newStageProgress(cmd.ErrOrStderr())
			report, runErr := dataset.Prepare(cmd.Context(), dataset.Options{
				InputDir:   cfg.Paths.InputDir,
				OutputDir:  cfg.Paths.OutputDir,
				TrainRatio: cfg.Prepare.TrainRatio,
				SampleRate: cfg.Prepare.SampleRate,
				Rules:      dataset.Rules{MinFileSizeKB: cfg.Prepare.MinFileSizeKB},
				AudioExt:   cfg.Prepare.AudioExt,
				TextExt:    cfg.Prepare.TextExt,
				Seed:       cfg.Prepare.Seed,
				Progress:   progress.Update,
			}, audio.NewFileCodec())
			progress.Finish()

			if report == nil {
				return runErr
			}
			printPrepareReport(cmd.OutOrStdout(), report)

			return errors.Join(runErr, writeReport(reportPath, report))
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "Write the run report to this YAML file")

	return cmd
}

func printPrepareReport(w io.Writer, r *dataset.Report) {
	summary := [][]string{
		{"audio files", strconv.Itoa(r.AudioFiles)},
		{"text files", strconv.Itoa(r.TextFiles)},
		{"unpaired audio", strconv.Itoa(len(r.Unpaired))},
		{"duplicate audio", strconv.Itoa(len(r.Duplicates))},
		{"excluded", strconv.Itoa(len(r.Excluded))},
		{"valid", strconv.Itoa(r.Valid)},
		{"train", strconv.Itoa(r.Train)},
		{"val", strconv.Itoa(r.Val)},
		{"seed", strconv.FormatUint(r.Seed, 10)},
	}
	_, _ = fmt.Fprintln(w, renderTable([]string{"Dataset", "Count"}, summary, 2))

	if len(r.Excluded) > 0 {
		rows := make([][]string, 0, len(r.Excluded))
		for _, e := range r.Excluded {
			rows = append(rows, []string{e.File, e.Reason})
		}
		_, _ = fmt.Fprintln(w, renderTable([]string{"Excluded file", "Reason"}, rows))
	}

	if r.TrainManifest != "" {
		_, _ = fmt.Fprintf(w, "train filelist: %s\nval filelist:   %s\n", r.TrainManifest, r.ValManifest)
	}
}
