// Command quantix evaluates structured-number documents and measures
// registers from the command line.
package main

import (
	"os"

	"github.com/arbitrary-number/quantix/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := cli.NewRootCommand()
	cmd.SetArgs(args)
	return cli.GetExitCode(cmd.Execute())
}
