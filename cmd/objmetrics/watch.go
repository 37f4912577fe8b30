package main

import (
	"fmt"
	"time"

	"github.com/philipparndt/objmetrics/internal/logger"
	"github.com/philipparndt/objmetrics/pkg/analysis"
	"github.com/philipparndt/objmetrics/pkg/obj"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	watchJSON     bool
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Print the info report whenever the file changes",
	Long: `Print the info report, then watch the file and print it again after every change.
For OpenSCAD sources every used or included file is watched as well.
Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "Print each report as JSON")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Quiet period before reloading (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]

	queries, err := cfg.BuildQueries()
	if err != nil {
		return err
	}

	debounce := cfg.Watch.Debounce
	if cmd.Flags().Changed("debounce") {
		debounce = watchDebounce
	}

	onLoad := func(mesh *obj.Mesh, err error) {
		if err != nil {
			logger.Error("reload failed", zap.String("file", filename), zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}

		result := analysis.AnalyzeMesh(mesh)
		report := analysis.NewReport(filename, result, analysis.EvaluateQueries(result.BoundingBox, queries))
		fmt.Fprintf(cmd.OutOrStdout(), "\n[%s]\n", time.Now().Format(time.TimeOnly))
		if err := writeReport(cmd, report, watchJSON || cfg.Report.JSON, -1); err != nil {
			logger.Error("failed to write report", zap.Error(err))
		}
	}

	return newLoader().Watch(cmd.Context(), filename, debounce, onLoad)
}
