package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/objmetrics/internal/config"
	"github.com/philipparndt/objmetrics/internal/loader"
	"github.com/philipparndt/objmetrics/internal/logger"
	"github.com/philipparndt/objmetrics/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	strict     bool
	logLevel   string
	logFile    string

	// cfg is the effective configuration, set before any subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "objmetrics",
	Short: "Measure surface area, volume and bounds of OBJ triangle meshes",
	Long: `objmetrics is a command-line tool for analyzing Wavefront OBJ triangle meshes.
It reports surface area, signed volume and the axis-aligned bounding box of a mesh,
answers containment and intersection queries against that box, and can render
OpenSCAD sources to OBJ before measuring them.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to config file (default ./objmetrics.yaml or the user config dir)")
	flags.BoolVar(&strict, "strict", false, "Reject malformed numbers instead of substituting 0")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")
}

// setup loads the configuration, applies flag overrides and initializes
// logging. Priority: defaults < file < flags.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("strict") {
		loaded.Parse.Strict = strict
	}
	if flags.Changed("log-level") {
		loaded.Logging.Level = logLevel
	}
	if flags.Changed("log-file") {
		loaded.Logging.LogFile = logFile
	}

	if err := logger.Init(loaded.Logging.Level, loaded.Logging.LogFile); err != nil {
		return err
	}

	cfg = loaded
	return nil
}

func newLoader() *loader.Loader {
	return loader.New(
		loader.WithStrict(cfg.Parse.Strict),
		loader.WithLogger(logger.Log),
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
