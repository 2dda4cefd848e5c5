// Package main is the entry point for the refining-profit CLI.
package main

import (
	"os"

	"refining-profit/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
