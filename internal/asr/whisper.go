package asr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Whisper CLI defaults.
const (
	DefaultWhisperCommand = "whisper"
	DefaultModel          = "base"
	DefaultTask           = "transcribe"
)

// CommandRunner executes an external command and returns its combined
// output on failure.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// WhisperCLI runs the openai-whisper command line tool and parses the JSON
// result it writes.
type WhisperCLI struct {
	command string
	runner  CommandRunner
	tempDir string
}

// NewWhisperCLI returns a recognizer invoking the given whisper executable.
func NewWhisperCLI(command string) *WhisperCLI {
	if command == "" {
		command = DefaultWhisperCommand
	}

	return &WhisperCLI{command: command, runner: runCommand}
}

// WithCommandRunner replaces the process runner (for testing).
func (w *WhisperCLI) WithCommandRunner(runner CommandRunner) *WhisperCLI {
	w.runner = runner
	return w
}

// WithTempDir sets the parent directory for whisper's output files.
func (w *WhisperCLI) WithTempDir(dir string) *WhisperCLI {
	w.tempDir = dir
	return w
}

// Command returns the configured executable.
func (w *WhisperCLI) Command() string { return w.command }

// Transcribe implements Recognizer.
func (w *WhisperCLI) Transcribe(ctx context.Context, audioPath string, opts Options) (Transcription, error) {
	if audioPath == "" {
		return Transcription{}, fmt.Errorf("transcribe: audio path required")
	}

	outDir, err := os.MkdirTemp(w.tempDir, "ttscorpus-whisper-")
	if err != nil {
		return Transcription{}, fmt.Errorf("transcribe: create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	args := buildWhisperArgs(audioPath, outDir, opts)
	slog.Debug("running whisper", "command", w.command, "args", args)

	if err := w.runner(ctx, w.command, args...); err != nil {
		return Transcription{}, fmt.Errorf("whisper: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))

	return ReadTranscription(filepath.Join(outDir, base+".json"))
}

func buildWhisperArgs(audioPath, outDir string, opts Options) []string {
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	task := opts.Task
	if task == "" {
		task = DefaultTask
	}

	args := []string{
		audioPath,
		"--model", model,
		"--task", task,
		"--word_timestamps", pyBool(opts.WordTimestamps),
		"--output_format", "json",
		"--output_dir", outDir,
		"--verbose", "False",
	}
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}

	return args
}

// pyBool formats a flag value the way whisper's argparse str2bool expects.
func pyBool(v bool) string {
	s := strconv.FormatBool(v)
	return strings.ToUpper(s[:1]) + s[1:]
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}

	return nil
}
