// Package evaluator implements the tree-walking evaluator (spec section
// 4.4, component E): expression and statement dispatch, operator
// semantics, call and tail-call mechanics, control forms, pattern
// matching, generators, and the builtin catalog. Grounded on the teacher's
// internal/interp package (CWBudde-go-dws): a single Interpreter/Evaluator
// type owning the live environment, a switch-based Eval dispatcher keyed
// on AST node type, and a control-flow signal checked after each statement
// rather than panic/recover.
package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/eddndev/achronyme/internal/types"
	"github.com/eddndev/achronyme/internal/value"
	"github.com/eddndev/achronyme/pkg/ast"
)

// RecursionLimit is the documented recursion budget (spec section 7:
// "approximately 50 nested user-function frames"). It is a var rather than
// a const so the CLI's ACHRONYME_STACK_SIZE override can adjust it before
// evaluation starts.
var RecursionLimit = 50

// frame identifies one live UserDefined call, used to recognize
// self-tail-calls (spec 4.4.3: "the pending call is in tail position of
// the same function").
type frame struct {
	fn *value.UserDefined
}

// Evaluator holds the state that outlives any single Eval call: the
// gradual-type alias table and the stack of currently executing
// UserDefined frames (for the recursion budget and tail-call detection).
// It does not hold the environment — that is threaded explicitly through
// every Eval call, since scopes nest with the AST rather than with the
// Evaluator's own lifetime.
type Evaluator struct {
	Types  *types.Table
	frames []frame
	curGen *value.Generator
	// Output is where the print/println builtins write (spec section 6),
	// grounded on the teacher's Interpreter.output field: a plain io.Writer
	// rather than a hardcoded os.Stdout, so a REPL or test harness can
	// redirect it.
	Output io.Writer
}

// New creates an Evaluator with a fresh type-alias table, printing to
// os.Stdout by default.
func New() *Evaluator {
	return &Evaluator{Types: types.NewTable(), Output: os.Stdout}
}

// child produces an Evaluator sharing the type table and output writer but
// with its own call stack, used to drive a Generator's body on its own
// goroutine (spec 4.6) without letting its frames corrupt the caller's
// recursion accounting.
func (e *Evaluator) child() *Evaluator {
	return &Evaluator{Types: e.Types, Output: e.Output}
}

// NewGlobalEnvironment builds the root scope with every builtin registered
// (spec section 6's minimum catalog), ready to evaluate a Program in. The
// higher-order collection builtins (map/filter/reduce/pipe/...) call back
// into e.apply, so registration is tied to the Evaluator instance that
// will run the program.
func (e *Evaluator) NewGlobalEnvironment() *value.Environment {
	env := value.NewEnvironment()
	registerConstants(env)
	registerMathBuiltins(env)
	e.registerCollectionBuiltins(env)
	registerStringBuiltins(env)
	registerTensorBuiltins(env)
	registerDSPBuiltins(env)
	e.registerNumericalBuiltins(env)
	registerLPBuiltins(env)
	registerGraphBuiltins(env)
	e.registerUtilBuiltins(env)
	return env
}

// EvalProgram runs every top-level statement in order, returning the value
// of the last ExpressionStatement (or Null), matching the REPL's "print
// the last result" behavior.
func (e *Evaluator) EvalProgram(prog *ast.Program, env *value.Environment) (value.Value, error) {
	var last value.Value = value.Null{}
	for _, stmt := range prog.Statements {
		v, err := e.evalStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		if v != nil {
			last = v
		}
	}
	return last, nil
}

// typeErrorf builds a TypeError-kind runtime error, the most common
// failure mode builtins and operators raise.
func typeErrorf(format string, args ...interface{}) *value.Error {
	return value.NewError(value.KindTypeError, fmt.Sprintf(format, args...))
}

func undefinedErrorf(format string, args ...interface{}) *value.Error {
	return value.NewError(value.KindUndefinedError, fmt.Sprintf(format, args...))
}

func valueErrorf(format string, args ...interface{}) *value.Error {
	return value.NewError(value.KindValueError, fmt.Sprintf(format, args...))
}

func shapeErrorf(format string, args ...interface{}) *value.Error {
	return value.NewError(value.KindShapeError, fmt.Sprintf(format, args...))
}

func indexErrorf(format string, args ...interface{}) *value.Error {
	return value.NewError(value.KindIndexError, fmt.Sprintf(format, args...))
}

func numericErrorf(format string, args ...interface{}) *value.Error {
	return value.NewError(value.KindNumericError, fmt.Sprintf(format, args...))
}

func matchErrorf(format string, args ...interface{}) *value.Error {
	return value.NewError(value.KindMatchError, fmt.Sprintf(format, args...))
}

func mutabilityErrorf(format string, args ...interface{}) *value.Error {
	return value.NewError(value.KindMutabilityError, fmt.Sprintf(format, args...))
}
