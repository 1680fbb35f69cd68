package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/eddndev/achronyme/internal/evaluator"
	"github.com/eddndev/achronyme/internal/parser"
	"github.com/eddndev/achronyme/internal/value"
	"github.com/spf13/cobra"
)

var (
	evalExpr  string
	dumpAST   bool
	stackSize int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an Achronyme script or expression",
	Long: `Execute an Achronyme program from a .soc file or an inline
expression.

Examples:
  achronyme run script.soc
  achronyme run -e "1 + 2 * 3"
  achronyme run --dump-ast script.soc`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runSource(resolveInput(evalExpr, args))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed program before running it")
	rootCmd.PersistentFlags().IntVar(&stackSize, "stack-size", 0, "override the recursion budget (0 keeps the default)")
}

// resolveStackSize returns the recursion-budget override to apply, if
// any: the --stack-size flag takes precedence, falling back to the
// ACHRONYME_STACK_SIZE environment variable (spec section 6's "optional
// stack-size override"). Zero means "keep the built-in default."
func resolveStackSize() int {
	if stackSize > 0 {
		return stackSize
	}
	if raw := os.Getenv("ACHRONYME_STACK_SIZE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// input bundles a script's source text with the name it should be
// reported under in diagnostics.
type input struct {
	source   string
	filename string
}

// resolveInput implements the run/root shared precedence: an inline -e
// expression first, then a file argument, then stdin.
func resolveInput(expr string, args []string) (input, error) {
	if expr != "" {
		return input{source: expr, filename: "<eval>"}, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return input{}, failWith(ExitIO, fmt.Errorf("failed to read file %s: %w", args[0], err))
		}
		return input{source: string(content), filename: args[0]}, nil
	}
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return input{}, failWith(ExitIO, fmt.Errorf("failed to read stdin: %w", err))
	}
	return input{source: string(content), filename: "<stdin>"}, nil
}

// runSource lexes, parses, and evaluates in, applying exit codes 1/2
// per spec section 6 and writing the final result to stdout the way the
// REPL prints the last expression of a line.
func runSource(in input, err error) error {
	if err != nil {
		return err
	}
	if n := resolveStackSize(); n > 0 {
		evaluator.RecursionLimit = n
	}

	p := parser.New(in.source, in.filename)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		formatted := make([]string, 0, len(errs))
		for _, e := range errs {
			formatted = append(formatted, e.Format())
		}
		for _, f := range formatted {
			fmt.Fprintln(os.Stderr, f)
		}
		return failWith(ExitParse, fmt.Errorf("parsing failed with %d error(s)", len(errs)))
	}

	if dumpAST {
		fmt.Println(program.String())
	}

	e := evaluator.New()
	env := e.NewGlobalEnvironment()
	result, evalErr := e.EvalProgram(program, env)
	if evalErr != nil {
		fmt.Fprintln(os.Stderr, evalErr.Error())
		return failWith(ExitEval, fmt.Errorf("evaluation failed"))
	}
	if _, isNull := result.(value.Null); !isNull {
		fmt.Println(value.Print(result))
	}
	return nil
}
