// SPDX-License-Identifier: MIT

// Command lveq evaluates equation-engine formulas from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/lvleq/internal/cli"
	"github.com/katalvlaran/lvleq/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCommandError)
	}

	if err = cli.NewRootCommand(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
