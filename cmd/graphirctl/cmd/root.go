package cmd

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  hclog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "graphirctl",
	Short: "Build, reduce, and inspect sea-of-nodes graphs",
	Long: `graphirctl builds one of a handful of canned function graphs, runs a
chosen sequence of reducers over it to a fixed point, and prints the result
as a Graphviz digraph or an ASCII reachability tree.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := hclog.Info
		if verbose {
			level = hclog.Debug
		}
		logger = hclog.New(&hclog.LoggerOptions{
			Name:   "graphirctl",
			Level:  level,
			Output: os.Stderr,
		})
		return nil
	},
}

// Execute runs the root command and returns any error it produced.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Logger returns the logger configured by the --verbose flag, valid once a
// command's PersistentPreRunE has run.
func Logger() hclog.Logger {
	return logger
}
