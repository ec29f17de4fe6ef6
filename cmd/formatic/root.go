package main

import (
	"github.com/spf13/cobra"
)

var (
	flagConfigPath string
	flagVerbosity  int
)

var rootCmd = &cobra.Command{
	Use:   "formatic",
	Short: "Automated format-string injection traversal",
	Long: "formatic drives a format-string injection oracle across a target " +
		"process's object graph, recursively recovering classes, functions, " +
		"modules, and code objects reachable from a single seeded accessor.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "explicit TOML config file path")
	rootCmd.PersistentFlags().CountVarP(&flagVerbosity, "verbosity", "v", "increase logging verbosity (repeatable)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)
}
