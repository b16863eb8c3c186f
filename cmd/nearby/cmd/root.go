// Package cmd provides the CLI commands for nearby.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/urbanform/nearby/internal/errors"
	"github.com/urbanform/nearby/internal/logging"
	"github.com/urbanform/nearby/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the nearby CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "Obstacle-aware nearest-neighbor search for GIS layers",
		Long: `Nearby finds, for every building footprint, the nearest other building
that can be reached by a straight segment which does not cross the
road network.

Layers are read and written as GeoJSON. Distances are planar, in the
layers' own map units, so inputs should use a projected CRS.`,
		Version: version.Version,
		// Errors are formatted by Execute with their code and hint.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.SetVersionTemplate("nearby version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.nearby/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newNearestCmd())
	cmd.AddCommand(newClassifyCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging enables file-based debug logging if the flag is set.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}

	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Version))

	return nil
}

// stopLogging closes the debug log file.
func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		slog.Info("debug logging stopped")
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// setupCommandLogging enables file logging for a single command run unless
// --debug already installed a logger. The returned cleanup may be a no-op.
func setupCommandLogging(level string) func() {
	if debugMode {
		return func() {}
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.WriteToStderr = false
	logger, cleanup, err := logging.Setup(cfg)
	if err != nil {
		return func() {}
	}
	slog.SetDefault(logger)
	return cleanup
}

// Execute runs the root command, printing failures with their error code
// and suggestion.
func Execute() error {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), errors.FormatForCLI(err))
		return err
	}
	return nil
}
