// Command numconform runs number-formatting conformance suites.
//
// The binary binds the platform backend to golang.org/x/text only.
// Programs that embed a legacy or pattern engine build their own root
// command with cli.WithLegacyEngine and cli.WithPatternEngine.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/numconform/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands report their own failures; anything else is a usage
		// error from cobra.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(cli.ExitCommandError)
		}
		os.Exit(exitErr.Code)
	}
}
