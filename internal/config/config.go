package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/example/go-tts-corpus/internal/asr"
)

// EnvPrefix prefixes every environment override, e.g. TTSCORPUS_PREPARE_SEED.
const EnvPrefix = "TTSCORPUS"

type Config struct {
	Paths   PathsConfig   `mapstructure:"paths"`
	Prepare PrepareConfig `mapstructure:"prepare"`
	Segment SegmentConfig `mapstructure:"segment"`
	Log     LogConfig     `mapstructure:"log"`
}

type PathsConfig struct {
	InputDir    string `mapstructure:"input_dir"`
	OutputDir   string `mapstructure:"output_dir"`
	SourceAudio string `mapstructure:"source_audio"`
	SegmentDir  string `mapstructure:"segment_dir"`
}

type PrepareConfig struct {
	TrainRatio    float64 `mapstructure:"train_ratio"`
	SampleRate    int     `mapstructure:"sample_rate"`
	MinFileSizeKB float64 `mapstructure:"min_file_size_kb"`
	AudioExt      string  `mapstructure:"audio_ext"`
	TextExt       string  `mapstructure:"text_ext"`
	// Seed 0 means "pick one from the clock".
	Seed uint64 `mapstructure:"seed"`
}

type SegmentConfig struct {
	Backend        string `mapstructure:"backend"`
	WhisperPath    string `mapstructure:"whisper_path"`
	Model          string `mapstructure:"model"`
	Language       string `mapstructure:"language"`
	Task           string `mapstructure:"task"`
	WordTimestamps bool   `mapstructure:"word_timestamps"`
	Format         string `mapstructure:"format"`
	TranscriptJSON string `mapstructure:"transcript_json"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			InputDir:    "data/splitted",
			OutputDir:   "data/processed",
			SourceAudio: "data/shoco.mp3",
			SegmentDir:  "save",
		},
		Prepare: PrepareConfig{
			TrainRatio:    0.9,
			SampleRate:    22050,
			MinFileSizeKB: 20,
			AudioExt:      ".mp3",
			TextExt:       ".txt",
		},
		Segment: SegmentConfig{
			Backend:        asr.BackendWhisperCLI,
			WhisperPath:    asr.DefaultWhisperCommand,
			Model:          asr.DefaultModel,
			Language:       "ko",
			Task:           asr.DefaultTask,
			WordTimestamps: true,
			Format:         "mp3",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// flagKeys maps every config flag to the key it overrides.
var flagKeys = map[string]string{
	"paths-input-dir":          "paths.input_dir",
	"paths-output-dir":         "paths.output_dir",
	"paths-source-audio":       "paths.source_audio",
	"paths-segment-dir":        "paths.segment_dir",
	"prepare-train-ratio":      "prepare.train_ratio",
	"prepare-sample-rate":      "prepare.sample_rate",
	"prepare-min-file-size-kb": "prepare.min_file_size_kb",
	"prepare-audio-ext":        "prepare.audio_ext",
	"prepare-text-ext":         "prepare.text_ext",
	"prepare-seed":             "prepare.seed",
	"seed":                     "prepare.seed",
	"segment-backend":          "segment.backend",
	"segment-whisper-path":     "segment.whisper_path",
	"segment-model":            "segment.model",
	"segment-language":         "segment.language",
	"segment-task":             "segment.task",
	"segment-word-timestamps":  "segment.word_timestamps",
	"segment-format":           "segment.format",
	"segment-transcript-json":  "segment.transcript_json",
	"log-level":                "log.level",
	"log-format":               "log.format",
	"log-file":                 "log.file",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-input-dir", defaults.Paths.InputDir, "Directory of paired audio/transcript files")
	fs.String("paths-output-dir", defaults.Paths.OutputDir, "Dataset output directory (wavs/ and filelists/)")
	fs.String("paths-source-audio", defaults.Paths.SourceAudio, "Long recording to segment")
	fs.String("paths-segment-dir", defaults.Paths.SegmentDir, "Output directory for segmented clips")
	fs.Float64("prepare-train-ratio", defaults.Prepare.TrainRatio, "Fraction of valid pairs assigned to the train set")
	fs.Int("prepare-sample-rate", defaults.Prepare.SampleRate, "Sample rate of exported WAV files")
	fs.Float64("prepare-min-file-size-kb", defaults.Prepare.MinFileSizeKB, "Minimum audio file size in KB")
	fs.String("prepare-audio-ext", defaults.Prepare.AudioExt, "Audio file extension to pair")
	fs.String("prepare-text-ext", defaults.Prepare.TextExt, "Transcript file extension to pair")
	fs.Uint64("prepare-seed", defaults.Prepare.Seed, "Shuffle seed (0 picks one from the clock)")
	fs.Uint64("seed", defaults.Prepare.Seed, "Shuffle seed (alias for --prepare-seed)")
	fs.String("segment-backend", defaults.Segment.Backend, "Recognizer backend (whisper-cli|whisper-json)")
	fs.String("segment-whisper-path", defaults.Segment.WhisperPath, "Path to the whisper executable")
	fs.String("segment-model", defaults.Segment.Model, "Whisper model name")
	fs.String("segment-language", defaults.Segment.Language, "Spoken language code (empty to auto-detect)")
	fs.String("segment-task", defaults.Segment.Task, "Whisper task (transcribe|translate)")
	fs.Bool("segment-word-timestamps", defaults.Segment.WordTimestamps, "Request word-level timestamps")
	fs.String("segment-format", defaults.Segment.Format, "Container format of segmented clips")
	fs.String("segment-transcript-json", defaults.Segment.TranscriptJSON, "Whisper JSON result read by the whisper-json backend")
	fs.String("log-level", defaults.Log.Level, "Log level (debug|info|warn|error)")
	fs.String("log-format", defaults.Log.Format, "Log format (json|text)")
	fs.String("log-file", defaults.Log.File, "Also write logs to this rotated file")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("ttscorpus")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// Validate rejects settings no run could succeed with.
func (c Config) Validate() error {
	var errs []error

	if r := c.Prepare.TrainRatio; math.IsNaN(r) || r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("prepare.train_ratio must be within [0, 1], got %v", r))
	}
	if c.Prepare.SampleRate < 1 {
		errs = append(errs, fmt.Errorf("prepare.sample_rate must be positive, got %d", c.Prepare.SampleRate))
	}
	if c.Prepare.MinFileSizeKB < 0 {
		errs = append(errs, fmt.Errorf("prepare.min_file_size_kb must not be negative, got %v", c.Prepare.MinFileSizeKB))
	}
	if _, err := asr.NormalizeBackend(c.Segment.Backend); err != nil {
		errs = append(errs, fmt.Errorf("segment.backend: %w", err))
	}
	switch c.Segment.Task {
	case "transcribe", "translate":
	default:
		errs = append(errs, fmt.Errorf("segment.task must be transcribe or translate, got %q", c.Segment.Task))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.input_dir", c.Paths.InputDir)
	v.SetDefault("paths.output_dir", c.Paths.OutputDir)
	v.SetDefault("paths.source_audio", c.Paths.SourceAudio)
	v.SetDefault("paths.segment_dir", c.Paths.SegmentDir)
	v.SetDefault("prepare.train_ratio", c.Prepare.TrainRatio)
	v.SetDefault("prepare.sample_rate", c.Prepare.SampleRate)
	v.SetDefault("prepare.min_file_size_kb", c.Prepare.MinFileSizeKB)
	v.SetDefault("prepare.audio_ext", c.Prepare.AudioExt)
	v.SetDefault("prepare.text_ext", c.Prepare.TextExt)
	v.SetDefault("prepare.seed", c.Prepare.Seed)
	v.SetDefault("segment.backend", c.Segment.Backend)
	v.SetDefault("segment.whisper_path", c.Segment.WhisperPath)
	v.SetDefault("segment.model", c.Segment.Model)
	v.SetDefault("segment.language", c.Segment.Language)
	v.SetDefault("segment.task", c.Segment.Task)
	v.SetDefault("segment.word_timestamps", c.Segment.WordTimestamps)
	v.SetDefault("segment.format", c.Segment.Format)
	v.SetDefault("segment.transcript_json", c.Segment.TranscriptJSON)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)
	v.SetDefault("log.file", c.Log.File)
}

// bindFlags binds the config flags to their dotted keys. Where a key has more
// than one flag, the one set on the command line is bound.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	chosen := make(map[string]*pflag.Flag, len(flagKeys))
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if cur, ok := chosen[key]; !ok || (f.Changed && !cur.Changed) {
			chosen[key] = f
		}
	}

	for key, f := range chosen {
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	}

	return nil
}
