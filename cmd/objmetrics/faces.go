package main

import (
	"fmt"
	"math"

	"github.com/philipparndt/objmetrics/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	facesCount    int
	facesLargest  bool
	facesSmallest bool
)

var facesCmd = &cobra.Command{
	Use:   "faces [file]",
	Short: "List the area and volume contribution of each face",
	Long:  "Display per-face area, signed volume contribution, perimeter and vertex positions.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFaces,
}

func init() {
	rootCmd.AddCommand(facesCmd)

	facesCmd.Flags().IntVarP(&facesCount, "count", "n", 10, "Number of faces to display")
	facesCmd.Flags().BoolVarP(&facesLargest, "largest", "l", false, "Show largest faces by area")
	facesCmd.Flags().BoolVarP(&facesSmallest, "smallest", "s", false, "Show smallest faces by area")
	facesCmd.MarkFlagsMutuallyExclusive("largest", "smallest")
}

func runFaces(cmd *cobra.Command, args []string) error {
	if facesCount < 0 {
		return fmt.Errorf("--count must not be negative, got %d", facesCount)
	}

	mesh, err := newLoader().Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	faces := analysis.Faces(mesh)

	totalArea := 0.0
	totalVolume := 0.0
	minArea := math.MaxFloat64
	maxArea := 0.0
	for _, f := range faces {
		totalArea += f.Area
		totalVolume += f.SignedVolume
		minArea = math.Min(minArea, f.Area)
		maxArea = math.Max(maxArea, f.Area)
	}

	var title string
	switch {
	case facesLargest:
		analysis.SortFacesByArea(faces, true)
		title = fmt.Sprintf("Top %d Largest Faces", facesCount)
	case facesSmallest:
		analysis.SortFacesByArea(faces, false)
		title = fmt.Sprintf("Top %d Smallest Faces", facesCount)
	default:
		title = fmt.Sprintf("First %d Faces", facesCount)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "Total faces: %d\n", len(faces))
	if len(faces) == 0 {
		fmt.Fprintln(out, "No faces in mesh.")
		return nil
	}
	fmt.Fprintf(out, "Total surface area: %.6f square units\n", totalArea)
	fmt.Fprintf(out, "Total volume: %.6f cubic units\n", totalVolume)
	fmt.Fprintf(out, "Min face area: %.6f square units\n", minArea)
	fmt.Fprintf(out, "Max face area: %.6f square units\n", maxArea)
	fmt.Fprintf(out, "Avg face area: %.6f square units\n\n", totalArea/float64(len(faces)))

	for i := 0; i < facesCount && i < len(faces); i++ {
		f := faces[i]
		fmt.Fprintf(out, "Face #%d:\n", f.Index+1)
		fmt.Fprintf(out, "  Area: %.6f square units\n", f.Area)
		fmt.Fprintf(out, "  Signed volume: %.6f cubic units\n", f.SignedVolume)
		fmt.Fprintf(out, "  Perimeter: %.6f units\n", f.Perimeter)
		fmt.Fprintf(out, "  Vertices: %s, %s, %s\n\n",
			analysis.FormatVector(f.Triangle.V1),
			analysis.FormatVector(f.Triangle.V2),
			analysis.FormatVector(f.Triangle.V3))
	}
	return nil
}
