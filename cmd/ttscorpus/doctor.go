package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/go-tts-corpus/internal/asr"
	"github.com/example/go-tts-corpus/internal/audio"
	"github.com/example/go-tts-corpus/internal/config"
	"github.com/example/go-tts-corpus/internal/doctor"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and input paths",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			backend, err := asr.NormalizeBackend(cfg.Segment.Backend)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "segment backend: %s\n", backend)

			dcfg := doctorConfig(cfg, backend)
			dcfg.FFmpegVersion = func() (string, error) { return doctor.ProbeFFmpeg(ctx) }
			dcfg.WhisperVersion = func() (string, error) { return doctor.ProbeExecutable(cfg.Segment.WhisperPath) }
			dcfg.PythonVersion = func() (string, error) { return doctor.ProbePythonVersion(ctx) }

			result := doctor.Run(dcfg, out)
			if result.Failed() {
				for _, f := range result.Failures() {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(out, "doctor checks passed")

			return nil
		},
	}

	return cmd
}

// doctorConfig decides which checks apply to cfg. Probes are filled in by the caller.
func doctorConfig(cfg config.Config, backend string) doctor.Config {
	dcfg := doctor.Config{
		SkipFFmpeg:  !needsFFmpeg(cfg),
		SkipWhisper: backend != asr.BackendWhisperCLI,
		Paths: []doctor.PathCheck{
			{Label: "input dir", Path: cfg.Paths.InputDir, Dir: true},
			{Label: "source audio", Path: cfg.Paths.SourceAudio},
		},
	}
	if backend == asr.BackendWhisperJSON {
		dcfg.Paths = append(dcfg.Paths, doctor.PathCheck{Label: "transcript json", Path: cfg.Segment.TranscriptJSON})
	}

	return dcfg
}

// needsFFmpeg reports whether any configured input or output is a non-WAV
// container.
func needsFFmpeg(cfg config.Config) bool {
	formats := []string{
		strings.TrimPrefix(strings.ToLower(cfg.Prepare.AudioExt), "."),
		audio.Format(cfg.Paths.SourceAudio),
		strings.TrimPrefix(strings.ToLower(cfg.Segment.Format), "."),
	}
	for _, f := range formats {
		if f != "wav" && f != "wave" {
			return true
		}
	}

	return false
}
