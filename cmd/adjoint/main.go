// Package main provides the adjoint CLI.
package main

import (
	"fmt"
	"os"

	"github.com/born-ml/adjoint/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
