package doctor_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-tts-corpus/internal/doctor"
)

func passing() doctor.Config {
	return doctor.Config{
		FFmpegVersion:  func() (string, error) { return "ffmpeg version 6.1.1", nil },
		WhisperVersion: func() (string, error) { return "/usr/local/bin/whisper", nil },
		PythonVersion:  func() (string, error) { return "3.11.4", nil },
	}
}

// ---------------------------------------------------------------------------
// all-pass scenario
// ---------------------------------------------------------------------------

func TestRun_AllChecksPass(t *testing.T) {
	var out strings.Builder
	result := doctor.Run(passing(), &out)

	if result.Failed() {
		t.Errorf("expected all checks to pass; failures: %v", result.Failures())
	}

	for _, want := range []string{"ffmpeg version 6.1.1", "whisper binary", "python version: 3.11.4"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output should contain %q; got:\n%s", want, out.String())
		}
	}
}

// ---------------------------------------------------------------------------
// missing tools
// ---------------------------------------------------------------------------

func TestRun_FFmpegMissingFails(t *testing.T) {
	cfg := passing()
	cfg.FFmpegVersion = func() (string, error) { return "", errBinaryNotFound }

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure when ffmpeg is not found")
	}

	if !hasFailureContaining(result.Failures(), "ffmpeg") {
		t.Errorf("expected failure mentioning ffmpeg, got: %v", result.Failures())
	}
}

func TestRun_WhisperMissingFails(t *testing.T) {
	cfg := passing()
	cfg.WhisperVersion = func() (string, error) { return "", errBinaryNotFound }

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "whisper") {
		t.Errorf("expected failure mentioning whisper, got: %v", result.Failures())
	}
}

func TestRun_NilProbeFails(t *testing.T) {
	var out strings.Builder
	result := doctor.Run(doctor.Config{}, &out)

	if len(result.Failures()) != 3 {
		t.Errorf("expected ffmpeg, whisper and python failures, got: %v", result.Failures())
	}
}

// ---------------------------------------------------------------------------
// Python version out of range
// ---------------------------------------------------------------------------

func TestRun_PythonOutOfRangeFails(t *testing.T) {
	for _, ver := range []string{"3.7.9", "3.14.0", "2.7.18"} {
		t.Run(ver, func(t *testing.T) {
			cfg := passing()
			cfg.PythonVersion = func() (string, error) { return ver, nil }

			var out strings.Builder
			result := doctor.Run(cfg, &out)

			if !hasFailureContaining(result.Failures(), "python") {
				t.Errorf("expected failure mentioning python, got: %v", result.Failures())
			}
		})
	}
}

func TestRun_PythonMissingFails(t *testing.T) {
	cfg := passing()
	cfg.PythonVersion = func() (string, error) { return "", errBinaryNotFound }

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "python") {
		t.Errorf("expected failure mentioning python, got: %v", result.Failures())
	}
}

// ---------------------------------------------------------------------------
// skipped checks
// ---------------------------------------------------------------------------

func TestRun_SkipWhisperSkipsPython(t *testing.T) {
	pythonCalled := false
	cfg := passing()
	cfg.SkipWhisper = true
	cfg.WhisperVersion = func() (string, error) { return "", errBinaryNotFound }
	cfg.PythonVersion = func() (string, error) {
		pythonCalled = true
		return "2.7.18", nil
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("expected pass with whisper skipped; failures: %v", result.Failures())
	}

	if pythonCalled {
		t.Error("python probe should not run when whisper is skipped")
	}

	if strings.Count(out.String(), "skipped") != 2 {
		t.Errorf("expected two skipped lines; got:\n%s", out.String())
	}
}

func TestRun_SkipFFmpeg(t *testing.T) {
	cfg := passing()
	cfg.SkipFFmpeg = true
	cfg.FFmpegVersion = nil

	var out strings.Builder
	if result := doctor.Run(cfg, &out); result.Failed() {
		t.Errorf("expected pass; failures: %v", result.Failures())
	}
}

// ---------------------------------------------------------------------------
// input paths
// ---------------------------------------------------------------------------

func TestRun_Paths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "shoco.mp3")
	if err := os.WriteFile(file, []byte("id3"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		check   doctor.PathCheck
		wantErr bool
	}{
		{"dir present", doctor.PathCheck{Label: "input dir", Path: dir, Dir: true}, false},
		{"file present", doctor.PathCheck{Label: "source audio", Path: file}, false},
		{"missing", doctor.PathCheck{Label: "input dir", Path: filepath.Join(dir, "nope"), Dir: true}, true},
		{"file where dir expected", doctor.PathCheck{Label: "input dir", Path: file, Dir: true}, true},
		{"dir where file expected", doctor.PathCheck{Label: "source audio", Path: dir}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := passing()
			cfg.Paths = []doctor.PathCheck{tt.check}

			var out strings.Builder
			result := doctor.Run(cfg, &out)

			if result.Failed() != tt.wantErr {
				t.Errorf("Failed() = %v; want %v (failures: %v)", result.Failed(), tt.wantErr, result.Failures())
			}

			if tt.wantErr && !hasFailureContaining(result.Failures(), tt.check.Label) {
				t.Errorf("failure should name %q: %v", tt.check.Label, result.Failures())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// output markers
// ---------------------------------------------------------------------------

func TestRun_OutputContainsPassAndFailMarkers(t *testing.T) {
	cfg := passing()
	cfg.FFmpegVersion = func() (string, error) { return "", errBinaryNotFound }

	var out strings.Builder
	doctor.Run(cfg, &out)

	if !strings.Contains(out.String(), doctor.PassMark) || !strings.Contains(out.String(), doctor.FailMark) {
		t.Errorf("output should contain both markers; got:\n%s", out.String())
	}
}

func TestResult_AddFailure(t *testing.T) {
	var result doctor.Result
	result.AddFailure("input dir: missing")

	failures := result.Failures()
	failures[0] = "mutated"

	if result.Failures()[0] != "input dir: missing" {
		t.Error("Failures() should return a copy")
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

type sentinelError string

func (e sentinelError) Error() string { return string(e) }

var errBinaryNotFound = sentinelError("binary not found")

func hasFailureContaining(failures []string, substr string) bool {
	substr = strings.ToLower(substr)
	for _, f := range failures {
		if strings.Contains(strings.ToLower(f), substr) {
			return true
		}
	}

	return false
}
