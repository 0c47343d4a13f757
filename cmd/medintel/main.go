package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrsinham/medintel/cmd/medintel/tui"
	"github.com/mrsinham/medintel/internal/config"
	"github.com/mrsinham/medintel/internal/logging"
)

// version is set at build time via -ldflags
var version = "dev"

// options holds the global flags. Empty values keep the configuration file's.
type options struct {
	configPath string
	lang       string
	theme      string
	logFile    string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "medintel.yaml"
	}
	return filepath.Join(dir, "medintel", "config.yaml")
}

// load reads the configuration, applies the flags and opens the log file.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.LoadFromYAML(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Language = o.lang
	}
	if flags.Changed("theme") {
		cfg.Theme = o.theme
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	o.logger, err = logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:   "medintel",
		Short: "MedIntel - medication companion in your terminal",
		Long: `MedIntel walks patients and caregivers through sign-in, onboarding
and prescription capture, then shows the day's doses on a dashboard.

Run without arguments to start the interactive interface.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer cancel()

			o.logger.Info("starting", zap.String("version", version),
				zap.String("language", o.cfg.Language), zap.String("theme", o.cfg.Theme))
			return tui.Run(ctx, o.cfg, o.logger)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&o.configPath, "config", "c", defaultConfigPath(), "Configuration file (YAML)")
	pf.StringVar(&o.lang, "lang", "", "Interface language: en, vi")
	pf.StringVar(&o.theme, "theme", "", "Color theme: classic, medintel")
	pf.StringVar(&o.logFile, "log-file", "", "Log file (empty disables logging)")
	pf.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newRoutesCmd(o))
	rootCmd.AddCommand(newConfigCmd(o))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
