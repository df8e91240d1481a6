// Package testutil provides shared fixtures and skip helpers for tests.
//
// Skip helpers call t.Skip with a clear reason when an external tool is
// absent, so integration tests remain runnable in partial environments:
//
//	func TestContainerRoundTrip(t *testing.T) {
//	    testutil.RequireFFmpeg(t)
//	    ...
//	}
package testutil

import (
	"os"
	"os/exec"
	"testing"
)

// RequireFFmpeg skips the test if ffmpeg is not on PATH. godub needs it for
// every non-WAV container.
func RequireFFmpeg(tb testing.TB) {
	tb.Helper()

	if _, err := exec.LookPath("ffmpeg"); err != nil {
		tb.Skipf("ffmpeg not available in PATH: %v", err)
	}
}

// RequireWhisper skips the test if the whisper CLI cannot be found. The
// TTSCORPUS_SEGMENT_WHISPER_PATH environment variable overrides the name.
func RequireWhisper(tb testing.TB) {
	tb.Helper()

	exe := os.Getenv("TTSCORPUS_SEGMENT_WHISPER_PATH")
	if exe == "" {
		exe = "whisper"
	}

	if _, err := exec.LookPath(exe); err != nil {
		tb.Skipf("whisper not available (%q not in PATH); set TTSCORPUS_SEGMENT_WHISPER_PATH to override", exe)
	}
}
