// Package main is the entry point for the buildaide CLI.
package main

import (
	"os"

	"buildaide/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
