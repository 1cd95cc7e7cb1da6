package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gostruct/internal/app"
	"github.com/philipparndt/gostruct/internal/config"
	"github.com/philipparndt/gostruct/version"
)

var (
	configFile  string
	resultsFile string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:     "gostruct [project.yaml]",
	Short:   "Interactive structural model editor",
	Long:    `gostruct lets you place solids on a ground plane, attach loads and supports, and inspect analysis results as colored and deformed geometry.`,
	Args:    cobra.MaximumNArgs(1),
	Version: version.GetFullVersion(),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := NewLogger(logLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		cfg := config.Default()
		if configFile != "" {
			if cfg, err = config.Load(configFile); err != nil {
				return err
			}
		}

		opts := app.Options{
			Config:      cfg,
			ResultsFile: resultsFile,
			Logger:      logger,
		}
		if len(args) == 1 {
			opts.ProjectFile = args[0]
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return app.Run(ctx, opts)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "viewer configuration file (YAML)")
	rootCmd.Flags().StringVar(&resultsFile, "results", "", "results file to load and watch for changes")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// NewLogger creates a text logger on stderr at the named level
func NewLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
