package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/objmetrics/pkg/analysis"
	"github.com/philipparndt/objmetrics/pkg/geometry"
	"github.com/spf13/cobra"
)

var (
	queryPoints []string
	queryBoxes  []string
	queryJSON   bool
)

var queryCmd = &cobra.Command{
	Use:   "query [file]",
	Short: "Test points and boxes against the mesh bounding box",
	Long: `Check whether points lie strictly inside the mesh bounding box, and whether boxes are
contained in or intersect it. Points on the boundary are not contained.

Examples:
  objmetrics query model.obj --point 0,0,0
  objmetrics query model.obj --box -1,-1,-1,1,1,1 --point 5,0,0`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringArrayVar(&queryPoints, "point", nil, "Point as x,y,z (repeatable)")
	queryCmd.Flags().StringArrayVar(&queryBoxes, "box", nil, "Box as minX,minY,minZ,maxX,maxY,maxZ (repeatable)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Print the results as JSON")
	queryCmd.MarkFlagsOneRequired("point", "box")
}

func runQuery(cmd *cobra.Command, args []string) error {
	queries, err := buildQueries(queryPoints, queryBoxes)
	if err != nil {
		return err
	}

	mesh, err := newLoader().Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	box := mesh.BoundingBox()
	results := analysis.EvaluateQueries(box, queries)

	out := cmd.OutOrStdout()
	if queryJSON {
		report := analysis.NewReport(args[0], analysis.AnalyzeMesh(mesh), results)
		return report.WriteJSON(out)
	}

	if box.IsEmpty() {
		fmt.Fprintln(out, "Bounding box: (empty: no vertices)")
	} else {
		fmt.Fprintf(out, "Bounding box: %s .. %s\n",
			analysis.FormatVectorPrecision(box.Min(), cfg.Report.Precision),
			analysis.FormatVectorPrecision(box.Max(), cfg.Report.Precision))
	}
	for _, r := range results {
		fmt.Fprintf(out, "Contains %s: %t\n", r.Query.Name, r.Contains)
		if r.Query.Kind == analysis.BoxQuery {
			fmt.Fprintf(out, "Intersects %s: %t\n", r.Query.Name, r.Intersects)
		}
	}
	return nil
}

func buildQueries(points, boxes []string) ([]analysis.Query, error) {
	var queries []analysis.Query

	for _, p := range points {
		c, err := parseCoordinates(p, 3)
		if err != nil {
			return nil, fmt.Errorf("invalid --point %q: %w", p, err)
		}
		queries = append(queries, analysis.NewPointQuery("", geometry.NewVector3(c[0], c[1], c[2])))
	}

	for _, b := range boxes {
		c, err := parseCoordinates(b, 6)
		if err != nil {
			return nil, fmt.Errorf("invalid --box %q: %w", b, err)
		}
		box := geometry.NewBoundingBox(
			geometry.NewVector3(c[0], c[1], c[2]),
			geometry.NewVector3(c[3], c[4], c[5]))
		queries = append(queries, analysis.NewBoxQuery("", box))
	}

	return queries, nil
}

func parseCoordinates(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma separated values, got %d", n, len(parts))
	}

	values := make([]float64, n)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}
