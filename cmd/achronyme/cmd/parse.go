package cmd

import (
	"fmt"

	"github.com/eddndev/achronyme/internal/parser"
	"github.com/eddndev/achronyme/pkg/ast"
	"github.com/spf13/cobra"
)

var (
	parseExpr     string
	parseDumpTree bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Achronyme source and display the AST",
	Long: `Parse Achronyme source code and print it back out, or dump its
parsed AST node by node with --dump-ast.

If no file is given, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseExpr, "eval", "e", "", "parse inline code instead of reading from a file")
	parseCmd.Flags().BoolVar(&parseDumpTree, "dump-ast", false, "dump the AST node by node instead of re-printing the source")
}

func runParse(_ *cobra.Command, args []string) error {
	in, err := resolveInput(parseExpr, args)
	if err != nil {
		return err
	}

	p := parser.New(in.source, in.filename)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Println(e.Format())
		}
		return failWith(ExitParse, fmt.Errorf("parsing failed with %d error(s)", len(errs)))
	}

	if parseDumpTree {
		fmt.Printf("Program (%d statements)\n", len(program.Statements))
		for _, stmt := range program.Statements {
			dumpNode(stmt, 1)
		}
		return nil
	}

	fmt.Print(program.String())
	return nil
}

// dumpNode prints every AST node's dynamic type alongside its own
// String() rendering, recursing into a handful of composite node shapes
// that carry nested statements or sub-expressions worth expanding.
func dumpNode(n ast.Node, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}
	fmt.Printf("%s%T: %s\n", pad, n, n.String())

	switch v := n.(type) {
	case *ast.ExpressionStatement:
		dumpNode(v.Expression, indent+1)
	case *ast.LetStatement:
		dumpNode(v.Value, indent+1)
	case *ast.MutStatement:
		dumpNode(v.Value, indent+1)
	case *ast.AssignStatement:
		dumpNode(v.Value, indent+1)
	case *ast.BinaryExpression:
		dumpNode(v.Left, indent+1)
		dumpNode(v.Right, indent+1)
	case *ast.UnaryExpression:
		dumpNode(v.Right, indent+1)
	case *ast.CallExpression:
		dumpNode(v.Callee, indent+1)
		for _, a := range v.Args {
			dumpNode(a, indent+1)
		}
	case *ast.LambdaExpression:
		dumpNode(v.Body, indent+1)
	case *ast.DoBlock:
		for _, s := range v.Statements {
			dumpNode(s, indent+1)
		}
	}
}
