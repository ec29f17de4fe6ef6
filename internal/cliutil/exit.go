// Package cliutil holds small process-exit helpers shared by cmd/formatic's
// subcommands.
package cliutil

import (
	"fmt"
	"os"
)

// Exit prints err to stderr and terminates the process with code 1.
func Exit(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

// ExitCode terminates the process with the given code after printing msg
// (if non-empty) to stderr, for exiting nonzero without a single Go error
// value to print. No command in cmd/formatic calls it.
func ExitCode(code int, msg string) {
	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(code)
}
