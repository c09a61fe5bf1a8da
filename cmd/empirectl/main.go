// Command empirectl inspects and edits the empire memory saved by empiresim.
package main

import (
	"fmt"
	"os"

	"github.com/talgya/mini-empire/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
