package evaluator

import (
	"github.com/eddndev/achronyme/internal/value"
	"github.com/eddndev/achronyme/pkg/ast"
)

// evalCall implements spec 4.4.3/4.4.4: `if`/`piecewise` are ordinary
// call-form identifiers special-cased here rather than real calls;
// everything else evaluates the callee, evaluates arguments
// left-to-right (flattening any `...spread` argument), and applies.
func (e *Evaluator) evalCall(n *ast.CallExpression, env *value.Environment, tail bool) (value.Value, error) {
	if ident, ok := n.Callee.(*ast.Identifier); ok {
		switch ident.Name {
		case "if":
			return e.evalIf(n, env, tail)
		case "piecewise":
			return e.evalPiecewise(n, env, tail)
		}
	}

	callee, err := e.evalExpr(n.Callee, env, false)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(value.Function)
	if !ok {
		return nil, typeErrorf("cannot call a %s", callee.Type())
	}

	args, err := e.evalArgs(n.Args, env)
	if err != nil {
		return nil, err
	}

	if ud, ok := fn.(*value.UserDefined); ok && tail && e.currentFrameIs(ud) {
		return nil, &tailCallSignal{Args: args}
	}

	return e.apply(fn, args, env)
}

func (e *Evaluator) evalArgs(exprs []ast.Expression, env *value.Environment) ([]value.Value, error) {
	args := make([]value.Value, 0, len(exprs))
	for _, a := range exprs {
		if sp, ok := a.(*ast.SpreadExpression); ok {
			v, err := e.evalExpr(sp.Value, env, false)
			if err != nil {
				return nil, err
			}
			if err := spreadInto(&args, v); err != nil {
				return nil, err
			}
			continue
		}
		v, err := e.evalExpr(a, env, false)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func (e *Evaluator) currentFrameIs(fn *value.UserDefined) bool {
	if len(e.frames) == 0 {
		return false
	}
	return e.frames[len(e.frames)-1].fn == fn
}

// apply dispatches a call to either a Builtin or a UserDefined (spec
// 4.4.3).
func (e *Evaluator) apply(fn value.Function, args []value.Value, env *value.Environment) (value.Value, error) {
	switch f := fn.(type) {
	case *value.Builtin:
		if !f.Variadic && len(args) != f.ArityN {
			return nil, typeErrorf("%s expects %d argument(s), got %d", f.Name, f.ArityN, len(args))
		}
		return f.Fn(args)
	case *value.UserDefined:
		return e.applyUserDefined(f, args)
	default:
		return nil, typeErrorf("unknown function kind %T", fn)
	}
}

// applyUserDefined implements spec 4.4.3's seven-step call procedure,
// looping in place on a self-tail-call instead of recursing.
func (e *Evaluator) applyUserDefined(fn *value.UserDefined, args []value.Value) (value.Value, error) {
	if len(e.frames) >= RecursionLimit {
		return nil, value.NewError(value.KindRecursionError, "recursion budget exceeded")
	}

	callEnv, err := bindParams(fn, args)
	if err != nil {
		return nil, err
	}
	callEnv.Define("rec", fn, false)

	e.frames = append(e.frames, frame{fn: fn})
	defer func() { e.frames = e.frames[:len(e.frames)-1] }()

	for {
		result, err := e.evalExpr(fn.Body, callEnv, true)
		if err != nil {
			if rs, ok := err.(*returnSignal); ok {
				return rs.Value, nil
			}
			if tc, ok := err.(*tailCallSignal); ok {
				callEnv, err = bindParams(fn, tc.Args)
				if err != nil {
					return nil, err
				}
				callEnv.Define("rec", fn, false)
				continue
			}
			return nil, err
		}
		return result, nil
	}
}

// bindParams binds fn's parameters over a fresh clone of its closure scope
// (spec 4.4.3 steps 2-4): a variadic last parameter receives a Vector of
// the remaining arguments.
func bindParams(fn *value.UserDefined, args []value.Value) (*value.Environment, error) {
	env := fn.Closure.Push()
	np := len(fn.Params)

	if fn.Variadic {
		if len(args) < np-1 {
			return nil, typeErrorf("%s expects at least %d argument(s), got %d", fnLabel(fn), np-1, len(args))
		}
		for i := 0; i < np-1; i++ {
			env.Define(fn.Params[i].Name, args[i], false)
		}
		rest := append([]value.Value(nil), args[np-1:]...)
		env.Define(fn.Params[np-1].Name, &value.Vector{Items: rest}, false)
		return env, nil
	}

	if len(args) != np {
		return nil, typeErrorf("%s expects %d argument(s), got %d", fnLabel(fn), np, len(args))
	}
	for i, p := range fn.Params {
		env.Define(p.Name, args[i], false)
	}
	return env, nil
}

func fnLabel(fn *value.UserDefined) string {
	if fn.Name != "" {
		return fn.Name
	}
	return "<lambda>"
}

// evalIf implements `if(c, t, e)` (spec 4.4.4); the chosen branch is in
// tail position exactly when the if-call itself is.
func (e *Evaluator) evalIf(n *ast.CallExpression, env *value.Environment, tail bool) (value.Value, error) {
	if len(n.Args) != 3 {
		return nil, typeErrorf("if expects 3 arguments, got %d", len(n.Args))
	}
	cond, err := e.evalExpr(n.Args[0], env, false)
	if err != nil {
		return nil, err
	}
	if value.Truthy(cond) {
		return e.evalExpr(n.Args[1], env, tail)
	}
	return e.evalExpr(n.Args[2], env, tail)
}

// evalPiecewise implements `piecewise([c1, v1], ..., default?)` (spec
// 4.4.4): each non-final argument must be a 2-element Vector `[cond,
// value]`; a trailing argument that is not such a pair is the default.
func (e *Evaluator) evalPiecewise(n *ast.CallExpression, env *value.Environment, tail bool) (value.Value, error) {
	args := n.Args
	hasDefault := len(args) > 0
	if hasDefault {
		if v, ok := args[len(args)-1].(*ast.ArrayLiteral); ok && len(v.Elements) == 2 {
			hasDefault = false
		}
	}
	pairs := args
	var def ast.Expression
	if hasDefault {
		pairs = args[:len(args)-1]
		def = args[len(args)-1]
	}
	for _, p := range pairs {
		arr, ok := p.(*ast.ArrayLiteral)
		if !ok || len(arr.Elements) != 2 {
			return nil, typeErrorf("piecewise expects [condition, value] pairs")
		}
		cond, err := e.evalExpr(arr.Elements[0], env, false)
		if err != nil {
			return nil, err
		}
		if value.Truthy(cond) {
			return e.evalExpr(arr.Elements[1], env, tail)
		}
	}
	if def != nil {
		return e.evalExpr(def, env, tail)
	}
	return nil, matchErrorf("piecewise: no condition matched and no default was given")
}
