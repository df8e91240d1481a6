package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/example/go-tts-corpus/internal/config"
	"github.com/example/go-tts-corpus/internal/logging"
)

var (
	cfgFile   string
	activeCfg *config.Config
	logCloser io.Closer
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "ttscorpus",
		Short:         "Prepare speech-synthesis training corpora",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			if err := setupLogger(loaded.Log, cmd.ErrOrStderr()); err != nil {
				return err
			}
			activeCfg = &loaded
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return closeLogger()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newPrepareCmd())
	cmd.AddCommand(newSegmentCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(lc config.LogConfig, console io.Writer) error {
	if err := closeLogger(); err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Options{
		Level:   lc.Level,
		Format:  lc.Format,
		File:    lc.File,
		Console: console,
	})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	logCloser = closer

	return nil
}

func closeLogger() error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil

	return err
}

func requireConfig() (config.Config, error) {
	if activeCfg == nil {
		return config.Config{}, errors.New("configuration not loaded")
	}
	return *activeCfg, nil
}
