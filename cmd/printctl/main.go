// Package main is the entry point for the printctl admin CLI.
package main

import (
	"os"

	"printit-bot/cmd/printctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
