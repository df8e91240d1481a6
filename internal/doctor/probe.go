package doctor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ProbeFFmpeg runs `ffmpeg -version` and returns the first output line.
func ProbeFFmpeg(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "ffmpeg", "-version").Output()
	if err != nil {
		return "", fmt.Errorf("ffmpeg -version failed: %w", err)
	}

	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")

	return strings.TrimSpace(line), nil
}

// ProbeExecutable resolves exe on PATH. The whisper CLI has no version flag,
// so the resolved path is reported instead.
func ProbeExecutable(exe string) (string, error) {
	path, err := exec.LookPath(exe)
	if err != nil {
		return "", err
	}

	return path, nil
}

// ProbePythonVersion tries python3 then python and returns the version string.
func ProbePythonVersion(ctx context.Context) (string, error) {
	for _, bin := range []string{"python3", "python"} {
		out, err := exec.CommandContext(ctx, bin, "--version").Output()
		if err != nil {
			continue
		}
		// Output is e.g. "Python 3.11.4\n"
		raw := strings.TrimPrefix(strings.TrimSpace(string(out)), "Python ")
		if raw != "" {
			return raw, nil
		}
	}

	return "", errors.New("python3/python not found on PATH")
}
