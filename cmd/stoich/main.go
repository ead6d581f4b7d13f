// Package main provides the stoich command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/stoich/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
