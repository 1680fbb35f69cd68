// Command achronyme is the Achronyme language's CLI: a REPL, a script
// runner, and a handful of diagnostic subcommands for inspecting the
// lexer and parser output directly.
package main

import (
	"os"

	"github.com/eddndev/achronyme/cmd/achronyme/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
