package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gostruct/pkg/analysis"
	"github.com/philipparndt/gostruct/pkg/store"
)

var (
	solveOutput  string
	solveQuiet   bool
	solveProject bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [project]",
	Short: "Run the mock analysis on a project",
	Long: `Run the mock analysis and write the results as JSON. Point the viewer's
--results flag at the same file to see them appear while it is running.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&solveOutput, "output", "o", "results.json", "results file to write")
	solveCmd.Flags().BoolVarP(&solveQuiet, "quiet", "q", false, "do not print progress")
	solveCmd.Flags().BoolVar(&solveProject, "store", false, "also store the results in the project file")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	filename := args[0]

	project, err := store.ReadProjectFile(filename)
	if err != nil {
		return err
	}
	if err := project.Validate(); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}
	if len(project.Solids) == 0 {
		return fmt.Errorf("%s contains no solids", filename)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	solver := analysis.NewMockSolver(nil)
	if !solveQuiet {
		solver.Progress = func(s analysis.Stage) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%3d%%] %s\n", s.Percent, s.Message)
		}
	}

	results, err := solver.Solve(ctx, inputOf(project))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := analysis.WriteResultsFile(solveOutput, results); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", solveOutput)

	if solveProject {
		s := store.New(nil)
		project.Results = results
		if err := s.LoadProject(project); err != nil {
			return err
		}
		if err := s.SaveFile(filename); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Results stored in %s\n", filename)
	}
	return nil
}
