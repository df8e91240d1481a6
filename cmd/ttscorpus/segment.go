package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/go-tts-corpus/internal/asr"
	"github.com/example/go-tts-corpus/internal/audio"
	"github.com/example/go-tts-corpus/internal/segment"
)

func newSegmentCmd() *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Transcribe a long recording and cut it into sentence clips",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			rec, err := asr.NewRecognizer(cfg.Segment.Backend, asr.BackendOptions{
				WhisperPath:    cfg.Segment.WhisperPath,
				TranscriptJSON: cfg.Segment.TranscriptJSON,
			})
			if err != nil {
				return err
			}

			progress := newStageProgress(cmd.ErrOrStderr())
			report, runErr := segment.Extract(cmd.Context(), segment.Options{
				Source:    cfg.Paths.SourceAudio,
				OutputDir: cfg.Paths.SegmentDir,
				Format:    cfg.Segment.Format,
				ASR: asr.Options{
					Model:          cfg.Segment.Model,
					Language:       cfg.Segment.Language,
					Task:           cfg.Segment.Task,
					WordTimestamps: cfg.Segment.WordTimestamps,
				},
				Progress: func(done, total int) { progress.Update("segment", done, total) },
			}, rec, audio.NewFileCodec())
			progress.Finish()

			if report == nil {
				return runErr
			}
			printSegmentReport(cmd.OutOrStdout(), report)

			return errors.Join(runErr, writeReport(reportPath, report))
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "Write the run report to this YAML file")

	return cmd
}

func printSegmentReport(w io.Writer, r *segment.Report) {
	rows := make([][]string, 0, len(r.Clips))
	for _, c := range r.Clips {
		rows = append(rows, []string{
			strconv.Itoa(c.Index),
			strconv.Itoa(c.SegmentID),
			strconv.FormatInt(c.StartMs, 10),
			strconv.FormatInt(c.EndMs, 10),
			c.Text,
		})
	}
	_, _ = fmt.Fprintln(w, renderTable(
		[]string{"#", "Segment", "Start ms", "End ms", "Text"},
		rows,
		1, 2, 3, 4,
	))
	_, _ = fmt.Fprintf(w, "%d of %d segments written to %s\n", len(r.Clips), r.Segments, r.OutputDir)
}
