package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gostruct/version"
)

var rootCmd = &cobra.Command{
	Use:   "gostruct",
	Short: "Inspect and solve gostruct projects from the command line",
	Long: `gostruct reads project files written by the viewer. It prints what a
project contains and runs the mock analysis to produce a results file the
viewer can watch.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
