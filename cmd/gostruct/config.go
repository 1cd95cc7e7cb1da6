package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gostruct/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config [file]",
	Short: "Write the default viewer configuration",
	Long:  "Write the default viewer configuration to a YAML file (gostruct.yaml unless a file is given). Pass it to the viewer with --config after editing.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := "gostruct.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if !configForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
	}
	if err := config.Default().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
	return nil
}
