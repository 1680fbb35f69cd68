package evaluator

import (
	"fmt"

	"github.com/eddndev/achronyme/internal/value"
)

// registerUtilBuiltins registers spec section 6's print/type/str catalog.
// print writes to the Evaluator's Output writer, grounded on the teacher's
// builtinPrintLn/builtinPrint (CWBudde-go-dws/internal/interp/builtins_core.go):
// arguments are concatenated via their own String() form, with no implicit
// separator.
func (e *Evaluator) registerUtilBuiltins(env *value.Environment) {
	def(env, builtin("print", 1, true, func(args []value.Value) (value.Value, error) {
		if e.Output == nil {
			return value.Null{}, nil
		}
		for _, a := range args {
			fmt.Fprint(e.Output, value.Print(a))
		}
		fmt.Fprintln(e.Output)
		return value.Null{}, nil
	}))

	def(env, builtin("type", 1, false, func(args []value.Value) (value.Value, error) {
		return value.Str{Val: args[0].Type()}, nil
	}))

	def(env, builtin("str", 1, false, func(args []value.Value) (value.Value, error) {
		return value.Str{Val: value.Print(args[0])}, nil
	}))
}
