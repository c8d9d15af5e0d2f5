// Package main provides the entry point for voidshell, a portfolio served
// through a fake terminal.
//
// Two surfaces share one session core:
//   - Bubble Tea: the full-screen terminal (internal/tui), the default
//   - gocmd2: a readline line-mode shell (internal/shell), with --plain
package main

import (
	"fmt"
	"os"

	"github.com/Necromancer-Labs/voidshell/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
