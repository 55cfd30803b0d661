// Package cmd implements the will CLI commands.
//
// The root command resolves will.yaml and configures logging before any
// subcommand runs.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-will/will/cmd/will/internal/config"
	"github.com/go-will/will/cmd/will/internal/logger"
	"github.com/go-will/will/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var (
	// Global flags
	verbose    bool
	configPath string
	logEnabled bool
	logDir     string

	// cfg is resolved by the root command before a subcommand runs.
	cfg *config.Resolved
	// logPath is the active log file, empty when logging is disabled.
	logPath string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "will",
		Short: "will - a minimal reactive UI runtime for Go",
		Long: `will renders declarative component trees with hook state, and
re-renders them whole whenever state changes while keeping keyboard
focus where it was.

Use "will <command> --help" for more information about a command.`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level and include panic stacks")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to will.yaml (default: searched from the working directory)")
	cmd.PersistentFlags().BoolVar(&logEnabled, "log", false, "Write a JSON log file")
	cmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Directory for log files (default: ~/.will/logs)")

	cmd.AddCommand(newRunCmd(), newRenderCmd(), newDemosCmd(), newInitCmd(), newStatusCmd(), newVersionCmd())
	return cmd
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	resolved, err := resolveConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log") {
		resolved.LogEnabled = logEnabled
	}
	if logDir != "" {
		resolved.LogDir = logDir
		resolved.LogEnabled = true
	}
	if verbose {
		resolved.LogLevel = slog.LevelDebug
	}
	cfg = resolved

	path, err := logger.Init(logger.Options{
		Enabled: cfg.LogEnabled,
		LogDir:  cfg.LogDir,
		Level:   cfg.LogLevel,
	})
	if err != nil {
		return errors.New("cmd.setup", errors.KindConfig, fmt.Errorf("failed to open log: %w", err))
	}
	logPath = path
	errors.SetHandler(&errors.LogHandler{Logger: logger.L, Verbose: verbose})

	logger.Debug("configured",
		"command", cmd.Name(),
		"app", cfg.AppName,
		"root", cfg.Root,
		"log", path,
	)
	return nil
}

func resolveConfig() (*config.Resolved, error) {
	if configPath != "" {
		c, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return c.Resolve(filepath.Dir(configPath))
	}
	root, err := config.FindProjectRoot()
	if err != nil {
		return nil, err
	}
	return config.Resolve(root)
}
