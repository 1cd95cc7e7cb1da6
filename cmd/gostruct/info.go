package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gostruct/pkg/analysis"
	"github.com/philipparndt/gostruct/pkg/model"
	"github.com/philipparndt/gostruct/pkg/store"
)

var infoResults string

var infoCmd = &cobra.Command{
	Use:   "info [project]",
	Short: "Display the solids, loads and supports of a project",
	Long:  "Show every solid with its volume, surface area and annotation counts, plus peak result values when results are available.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoResults, "results", "r", "", "results file to report instead of the results stored in the project")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	project, err := store.ReadProjectFile(filename)
	if err != nil {
		return err
	}
	if err := project.Validate(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	results := project.Results
	if infoResults != "" {
		if results, err = analysis.ReadResultsFile(infoResults); err != nil {
			return err
		}
	}

	summary := analysis.Summarize(inputOf(project), results)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Project Information")
	fmt.Fprintln(out, "===================")
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Model Statistics:")
	fmt.Fprintf(out, "  Solids: %d\n", len(summary.Solids))
	fmt.Fprintf(out, "  Loads: %d\n", summary.Loads)
	fmt.Fprintf(out, "  Supports: %d\n", summary.Supports)
	if summary.Dangling > 0 {
		fmt.Fprintf(out, "  Dangling annotations: %d\n", summary.Dangling)
	}
	fmt.Fprintf(out, "  Volume: %.6f cubic units\n", summary.Volume)
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n\n", summary.SurfaceArea)

	fmt.Fprintln(out, "Solids:")
	for _, s := range summary.Solids {
		fmt.Fprintf(out, "  %s (%s, %s)\n", s.Name, s.Kind, s.ID)
		fmt.Fprintf(out, "    Volume: %.6f | Surface Area: %.6f\n", s.Volume, s.SurfaceArea)
		fmt.Fprintf(out, "    Loads: %d | Supports: %d\n", s.Loads, s.Supports)
		if summary.Solved && s.Samples > 0 {
			fmt.Fprintf(out, "    Max Displacement: %.3e m | Max Stress: %.2f MPa\n", s.MaxDisp, s.MaxStress/1e6)
		}
	}

	if results != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Results:")
		printRange(out, "Displacement", results.Displacement, func(v float64) string { return fmt.Sprintf("%.3e m", v) })
		printRange(out, "Stress", results.Stress, func(v float64) string { return fmt.Sprintf("%.2f MPa", v/1e6) })
	}
	return nil
}

func printRange(out io.Writer, label string, r model.Range, format func(float64) string) {
	fmt.Fprintf(out, "  %s: %s .. %s\n", label, format(r.Min), format(r.Max))
}

func inputOf(p store.Project) analysis.Input {
	in := analysis.Input{
		Solids:   p.Solids,
		Loads:    p.Loads,
		Supports: p.Supports,
		Material: model.DefaultMaterial(),
	}
	if len(p.Materials) > 0 {
		in.Material = p.Materials[0]
	}
	return in
}
