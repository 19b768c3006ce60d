// Command plantgen is the CLI collaborator spec.md §6 treats as external
// to the core: argument parsing, file I/O, and diagnostic formatting live
// here, never inside internal/parser, internal/semantic or
// internal/emitter.
package main

import (
	"os"

	"github.com/hsmgen/plantgen/cmd/plantgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
