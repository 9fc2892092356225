package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"jordanella.com/pixel-trigger-go/internal/config"
	"jordanella.com/pixel-trigger-go/internal/logging"
)

// options holds the command line flags
type options struct {
	configPath  string
	presetsPath string
	presetName  string
	logLevel    string
	logDir      string
	headless    bool
	enable      bool
}

// newRootCmd builds a fresh command tree so tests never share flag state
func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "pixeltrigger",
		Short:         "Click when a target color appears around the screen center",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), opts, settings)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultINIPath, "INI settings file")
	flags.StringVar(&opts.presetsPath, "presets", config.DefaultPresetYML, "YAML file of color presets")

	cmd.Flags().StringVarP(&opts.presetName, "preset", "p", "", "apply a color preset at startup")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR (overrides the settings file)")
	cmd.Flags().StringVar(&opts.logDir, "log-dir", "", "directory for log files (overrides the settings file)")
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "run without a window until interrupted")
	cmd.Flags().BoolVar(&opts.enable, "enable", false, "start with detection enabled")

	cmd.AddCommand(newWriteConfigCmd(opts))
	return cmd
}

func newWriteConfigCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "write-config",
		Short: "Write the default settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configPath)
			}
			if err := config.SaveToINI(config.NewDefaultConfig(), opts.configPath); err != nil {
				return fmt.Errorf("failed to write %s: %w", opts.configPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// settings is everything resolved from files and flags before startup
type settings struct {
	config      config.Config
	presets     *config.Presets
	configFound bool
}

// loadSettings reads the INI and presets files and applies flag overrides.
// A missing settings file means defaults; a broken one is an error.
func loadSettings(cmd *cobra.Command, opts *options) (settings, error) {
	cfg, found, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return settings{}, err
	}
	s := settings{config: cfg, configFound: found}

	presets, err := config.LoadPresets(opts.presetsPath)
	switch {
	case err == nil:
		s.presets = presets
	case errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("presets"):
		// optional unless asked for
	default:
		return settings{}, err
	}

	if opts.presetName != "" {
		if s.presets == nil {
			return settings{}, fmt.Errorf("preset %q requested but no presets file was loaded", opts.presetName)
		}
		preset, ok := s.presets.Find(opts.presetName)
		if !ok {
			return settings{}, fmt.Errorf("unknown preset %q", opts.presetName)
		}
		preset.Apply(&s.config)
	}

	if opts.logLevel != "" {
		if _, err := logging.ParseLevel(opts.logLevel); err != nil {
			return settings{}, err
		}
		s.config.LogLevel = opts.logLevel
	}
	if opts.logDir != "" {
		s.config.LogDir = opts.logDir
	}
	if opts.enable {
		s.config.StartEnabled = true
	}

	s.config.Normalize()
	return s, nil
}
