package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cbosoft/greygoo/internal/game"
)

func main() {
	os.Exit(execute(os.Stdout, os.Stderr, game.RealClock{}, os.Args[1:]))
}

// execute runs one invocation and returns the exit code. Errors are printed
// to errOut since the root command silences cobra's own reporting.
func execute(out, errOut io.Writer, clock game.Clock, args []string) int {
	cmd := newRootCommand(out, errOut, clock)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(errOut, "greygoo:", err)
		return 1
	}
	return 0
}
