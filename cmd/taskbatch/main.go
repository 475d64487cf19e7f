package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rshade/taskbatch/internal/cli"
	"github.com/rshade/taskbatch/pkg/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
// Errors are printed to stderr.
func run(args []string, stderr io.Writer) int {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	root.SilenceErrors = true
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
