// Command formatic drives the format-string-injection traversal engine
// against a target via a caller-supplied oracle command.
package main

import (
	"os"

	"formatic/internal/cliutil"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		cliutil.Exit(err)
	}
	os.Exit(0)
}
