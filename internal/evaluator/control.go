package evaluator

import (
	"github.com/eddndev/achronyme/internal/value"
	"github.com/eddndev/achronyme/pkg/ast"
)

// evalDoBlock implements `do { s1; ...; e }` (spec 4.4.4): pushes a scope,
// evaluates statements in order, and yields the final expression
// statement's value (or Null). tail propagates only to that final
// statement, since it is the only one that can be the enclosing
// function's tail position.
func (e *Evaluator) evalDoBlock(n *ast.DoBlock, env *value.Environment, tail bool) (value.Value, error) {
	scope := env.Push()
	return e.evalBlock(n.Statements, scope, tail)
}

// evalBlock runs a statement list in scope, returning the last
// ExpressionStatement's value or Null if the block is empty or its final
// statement is not an expression.
func (e *Evaluator) evalBlock(stmts []ast.Statement, scope *value.Environment, tail bool) (value.Value, error) {
	var last value.Value = value.Null{}
	for i, stmt := range stmts {
		isLast := i == len(stmts)-1
		if isLast {
			if es, ok := stmt.(*ast.ExpressionStatement); ok {
				return e.evalExpr(es.Expression, scope, tail)
			}
		}
		v, err := e.evalStatement(stmt, scope)
		if err != nil {
			return nil, err
		}
		if v != nil {
			last = v
		}
	}
	return last, nil
}

// evalTry implements `try { body } catch (e) { handler }` (spec 4.4.4):
// only a *value.Error raised by body is catchable; returnSignal and
// tailCallSignal propagate unchanged since they are control-flow, not
// runtime errors.
func (e *Evaluator) evalTry(n *ast.TryExpression, env *value.Environment, tail bool) (value.Value, error) {
	v, err := e.evalExpr(n.Body, env.Push(), false)
	if err == nil {
		return v, nil
	}
	runtimeErr, ok := err.(*value.Error)
	if !ok {
		return nil, err
	}
	handlerEnv := env.Push()
	handlerEnv.Define(n.CatchName, runtimeErr.ToRecord(), false)
	return e.evalExpr(n.Handler, handlerEnv, tail)
}

// evalThrow implements `throw v` (spec 4.4.4's normalization rules).
func (e *Evaluator) evalThrow(n *ast.ThrowExpression, env *value.Environment) (value.Value, error) {
	v, err := e.evalExpr(n.Value, env, false)
	if err != nil {
		return nil, err
	}
	return nil, throwValueToError(v)
}

func throwValueToError(v value.Value) *value.Error {
	switch x := v.(type) {
	case *value.Error:
		return x
	case *value.Record:
		msg, kind, source := "", value.KindUserError, value.Value(nil)
		if mv, ok := x.Get("message"); ok {
			msg = stringifyConcat(mv)
		}
		if kv, ok := x.Get("kind"); ok {
			if s, ok := kv.(value.Str); ok {
				kind = value.Kind(s.Val)
			}
		}
		if sv, ok := x.Get("source"); ok {
			source = sv
		}
		return &value.Error{Message: msg, Kind: kind, Source: source}
	case value.Str:
		return &value.Error{Message: x.Val, Kind: value.KindUserError}
	default:
		return &value.Error{Message: value.Print(v), Kind: value.KindUserError}
	}
}

// evalWhile implements `while (c) { body }` (spec 4.4.4): the expression's
// value is the last iteration's body value, or Null for zero iterations.
func (e *Evaluator) evalWhile(n *ast.WhileExpression, env *value.Environment) (value.Value, error) {
	var last value.Value = value.Null{}
	for {
		cond, err := e.evalExpr(n.Condition, env, false)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(cond) {
			return last, nil
		}
		v, err := e.evalExpr(n.Body, env.Push(), false)
		if err != nil {
			return nil, err
		}
		last = v
	}
}

// evalFor implements `for (x in iter) { body }` (spec 4.4.4): iter must be
// a Vector, tensor, or Generator; each iteration binds x in a fresh scope.
func (e *Evaluator) evalFor(n *ast.ForExpression, env *value.Environment) (value.Value, error) {
	iter, err := e.evalExpr(n.Iterable, env, false)
	if err != nil {
		return nil, err
	}
	switch it := iter.(type) {
	case *value.Vector:
		for _, item := range it.Items {
			if err := e.runForBody(n, env, item); err != nil {
				return nil, err
			}
		}
	case *value.RealTensor:
		for _, f := range it.Data() {
			if err := e.runForBody(n, env, value.Number{Val: f}); err != nil {
				return nil, err
			}
		}
	case *value.ComplexTensor:
		for _, c := range it.Data() {
			if err := e.runForBody(n, env, value.Complex{Val: c}); err != nil {
				return nil, err
			}
		}
	case *value.Generator:
		// Stop releases the generator's driving goroutine if the loop exits
		// before the generator is exhausted (e.g. a `return` inside the
		// body unwinds out of this loop early); it is a no-op once the
		// generator is already done, so the normal exhaustion path pays
		// nothing extra.
		defer it.Stop()
		for {
			v, ok, err := it.Next()
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			if err := e.runForBody(n, env, v); err != nil {
				return nil, err
			}
		}
	default:
		return nil, typeErrorf("for: %s is not iterable", iter.Type())
	}
	return value.Null{}, nil
}

func (e *Evaluator) runForBody(n *ast.ForExpression, env *value.Environment, item value.Value) error {
	scope := env.Push()
	scope.Define(n.VarName, item, false)
	_, err := e.evalExpr(n.Body, scope, false)
	return err
}
