package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags "-X main.version=...";
// "dev" is what a plain `go build` produces.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the formatic version and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("formatic", version)
		return nil
	},
}
