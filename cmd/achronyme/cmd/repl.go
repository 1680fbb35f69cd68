package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/eddndev/achronyme/internal/evaluator"
	"github.com/eddndev/achronyme/internal/parser"
	"github.com/eddndev/achronyme/internal/value"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Achronyme session",
	Long: `Start a read-eval-print loop: each line is parsed and evaluated
against a single persistent environment, and the result is printed with
the canonical pretty-printer.

The commands help, exit, quit, and clear are intercepted before
parsing; everything else is handed to the parser and evaluator.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runREPL(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

const replBanner = `Achronyme %s — type "help" for commands, "exit" to quit.
`

const replHelp = `  help    show this message
  clear   reset the current environment's bindings
  exit    leave the REPL
  quit    same as exit
`

// runREPL drives the read-eval-print loop described in spec section 6:
// bare commands are intercepted before parsing, every other line is fed
// to the parser and evaluator sharing one persistent environment, and
// the result is printed with the canonical pretty-printer. A parse or
// evaluation error is reported and the loop continues rather than
// exiting, since only the intercepted commands end the session.
func runREPL(in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, replBanner, Version)

	e := evaluator.New()
	e.Output = out
	env := e.NewGlobalEnvironment()

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			fmt.Fprint(out, "> ")
			continue
		case "help":
			fmt.Fprint(out, replHelp)
			fmt.Fprint(out, "> ")
			continue
		case "exit", "quit":
			return nil
		case "clear":
			env = e.NewGlobalEnvironment()
			fmt.Fprint(out, "> ")
			continue
		}

		p := parser.New(line, "<repl>")
		program := p.ParseProgram()
		if errs := p.Errors(); len(errs) > 0 {
			for _, perr := range errs {
				fmt.Fprintln(out, perr.Format())
			}
			fmt.Fprint(out, "> ")
			continue
		}

		result, err := e.EvalProgram(program, env)
		if err != nil {
			fmt.Fprintln(out, err.Error())
			fmt.Fprint(out, "> ")
			continue
		}
		if _, isNull := result.(value.Null); !isNull {
			fmt.Fprintln(out, value.Print(result))
		}
		fmt.Fprint(out, "> ")
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
