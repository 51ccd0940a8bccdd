// Command mithrilc is the command-line front end for the inference engine:
// it reads a graph description, runs the pipeline, and reports static keys
// and the rendered summary.
package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "mithrilc",
	Short: "Symbolic shape, type, and static-key inference over model graphs",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(inferCmd, staticKeysCmd)
}

func newLogger() *zap.Logger {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stderr"}
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
