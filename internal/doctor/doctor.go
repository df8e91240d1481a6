// Package doctor provides environment preflight checks for ttscorpus.
package doctor

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// Supported Python range for openai-whisper: [3.8, 3.14).
const (
	minPythonMinor = 8
	maxPythonMinor = 14
)

// VersionFunc returns a version string or an error if the component is unavailable.
type VersionFunc func() (string, error)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// FFmpegVersion reports the ffmpeg build used to decode and export
	// non-WAV audio.
	FFmpegVersion VersionFunc
	SkipFFmpeg    bool
	// WhisperVersion locates the whisper executable.
	WhisperVersion VersionFunc
	// SkipWhisper skips the whisper and python checks (whisper-json backend).
	SkipWhisper bool
	// PythonVersion returns the Python version string (e.g. "3.11.4").
	PythonVersion VersionFunc
	// Paths are inputs that must exist, keyed by a short label.
	Paths []PathCheck
}

// PathCheck names an input path that must exist.
type PathCheck struct {
	Label string
	Path  string
	// Dir requires the path to be a directory; otherwise it must be a file.
	Dir bool
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	checkTool(&res, w, "ffmpeg", cfg.SkipFFmpeg, cfg.FFmpegVersion)
	checkTool(&res, w, "whisper", cfg.SkipWhisper, cfg.WhisperVersion)

	switch {
	case cfg.SkipWhisper:
		fmt.Fprintf(w, "%s python version: skipped\n", PassMark)
	case cfg.PythonVersion == nil:
		res.fail("python version: no probe configured")
		fmt.Fprintf(w, "%s python version: no probe configured\n", FailMark)
	default:
		pyVer, err := cfg.PythonVersion()
		if err != nil {
			res.fail(fmt.Sprintf("python version: %v", err))
			fmt.Fprintf(w, "%s python version: not found (%v)\n", FailMark, err)
		} else if pyErr := checkPythonVersion(pyVer); pyErr != nil {
			res.fail(fmt.Sprintf("python version: %v", pyErr))
			fmt.Fprintf(w, "%s python version %s: %v\n", FailMark, pyVer, pyErr)
		} else {
			fmt.Fprintf(w, "%s python version: %s\n", PassMark, pyVer)
		}
	}

	for _, p := range cfg.Paths {
		if err := checkPath(p); err != nil {
			res.fail(fmt.Sprintf("%s %q: %v", p.Label, p.Path, err))
			fmt.Fprintf(w, "%s %s %s: %v\n", FailMark, p.Label, p.Path, err)
		} else {
			fmt.Fprintf(w, "%s %s: %s\n", PassMark, p.Label, p.Path)
		}
	}

	return res
}

func checkTool(res *Result, w io.Writer, name string, skip bool, probe VersionFunc) {
	if skip {
		fmt.Fprintf(w, "%s %s binary: skipped\n", PassMark, name)
		return
	}
	if probe == nil {
		res.fail(fmt.Sprintf("%s binary: no probe configured", name))
		fmt.Fprintf(w, "%s %s binary: no probe configured\n", FailMark, name)
		return
	}

	ver, err := probe()
	if err != nil {
		res.fail(fmt.Sprintf("%s binary: %v", name, err))
		fmt.Fprintf(w, "%s %s binary: not found (%v)\n", FailMark, name, err)
		return
	}
	fmt.Fprintf(w, "%s %s binary: %s\n", PassMark, name, ver)
}

func checkPath(p PathCheck) error {
	info, err := os.Stat(p.Path)
	if err != nil {
		return err
	}
	if p.Dir && !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	if !p.Dir && info.IsDir() {
		return fmt.Errorf("is a directory")
	}

	return nil
}

// checkPythonVersion returns an error if ver is outside [3.8, 3.14).
// ver is expected to be a string like "3.11.4".
func checkPythonVersion(ver string) error {
	major, minor, err := parseMajorMinor(ver)
	if err != nil {
		return fmt.Errorf("cannot parse %q: %w", ver, err)
	}
	if major != 3 {
		return fmt.Errorf("requires Python 3, got %d", major)
	}
	if minor < minPythonMinor {
		return fmt.Errorf("requires Python >=3.%d, got 3.%d", minPythonMinor, minor)
	}
	if minor >= maxPythonMinor {
		return fmt.Errorf("requires Python <3.%d, got 3.%d", maxPythonMinor, minor)
	}
	return nil
}

func parseMajorMinor(ver string) (major, minor int, err error) {
	parts := strings.SplitN(ver, ".", 3)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("unexpected version format %q", ver)
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad major in %q: %w", ver, err)
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad minor in %q: %w", ver, err)
	}
	return major, minor, nil
}
