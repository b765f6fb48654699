// Command fenrirengine hosts a single-pair matching engine: "run" serves it
// over TCP, "replay" feeds it a recorded journal. Neither mode is part of
// the engine core itself (spec.md §1's "out of scope: process supervision
// ... I/O"); this binary is the host.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "fenrirengine",
		Short: "Single-pair limit order book matching engine",
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newReplayCmd())
	root.AddCommand(newGenerateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
