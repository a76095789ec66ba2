// Command editor is the headless CLI for the Morgan-Bevy level editor.
package main

import (
	"os"

	"github.com/morganbevy/editor/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
