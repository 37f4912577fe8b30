package main

import (
	"github.com/philipparndt/objmetrics/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	infoJSON      bool
	infoPrecision int
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display area, volume and bounding box of a mesh",
	Long: `Show vertex and face counts, total surface area, signed volume and the bounding box
of a mesh, followed by the configured containment and intersection queries.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Print the report as JSON")
	infoCmd.Flags().IntVarP(&infoPrecision, "precision", "p", -1, "Decimal places in text output (default from config)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	mesh, err := newLoader().Load(cmd.Context(), filename)
	if err != nil {
		return err
	}

	queries, err := cfg.BuildQueries()
	if err != nil {
		return err
	}

	result := analysis.AnalyzeMesh(mesh)
	report := analysis.NewReport(filename, result, analysis.EvaluateQueries(result.BoundingBox, queries))

	return writeReport(cmd, report, infoJSON || cfg.Report.JSON, infoPrecision)
}

func writeReport(cmd *cobra.Command, report *analysis.Report, asJSON bool, precision int) error {
	if asJSON {
		return report.WriteJSON(cmd.OutOrStdout())
	}
	if precision < 0 {
		precision = cfg.Report.Precision
	}
	return report.WriteText(cmd.OutOrStdout(), precision)
}
