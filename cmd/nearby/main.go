// Package main provides the entry point for the nearby CLI.
package main

import (
	"os"

	"github.com/urbanform/nearby/cmd/nearby/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
