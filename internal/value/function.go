package value

import "github.com/eddndev/achronyme/pkg/ast"

// Function is implemented by both Builtin and UserDefined so the evaluator
// can dispatch calls uniformly (spec 4.4.4).
type Function interface {
	Value
	Arity() int
	IsVariadic() bool
}

// Builtin wraps a natively-implemented function (spec 4.6's standard
// library surface, plus tensor/linalg/lpsolver/graph/string dispatch).
type Builtin struct {
	Name     string
	ArityN   int
	Variadic bool
	Fn       func(args []Value) (Value, error)
}

func (b *Builtin) Type() string     { return "Function" }
func (b *Builtin) String() string   { return "<builtin " + b.Name + ">" }
func (b *Builtin) Arity() int       { return b.ArityN }
func (b *Builtin) IsVariadic() bool { return b.Variadic }

// UserDefined is a closure created by a lambda expression (spec 3.1, 4.4.4):
// it captures the defining Environment by reference, so mutations to
// captured `mut` bindings are visible on later calls.
type UserDefined struct {
	Name     string // printed by String when set; lambda evaluation leaves it empty, `let f = ...` included
	Params   []ast.Param
	Body     ast.Expression
	Closure  *Environment
	Variadic bool
}

func (f *UserDefined) Type() string { return "Function" }
func (f *UserDefined) String() string {
	if f.Name != "" {
		return "<function " + f.Name + ">"
	}
	return "<lambda>"
}
func (f *UserDefined) Arity() int       { return len(f.Params) }
func (f *UserDefined) IsVariadic() bool { return f.Variadic }
