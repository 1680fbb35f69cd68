package evaluator

import (
	"github.com/eddndev/achronyme/internal/tensor"
	"github.com/eddndev/achronyme/internal/value"
	"github.com/eddndev/achronyme/pkg/ast"
)

// evalExpr dispatches one expression node (spec 4.4.1). tail marks whether
// this node is in tail position of the enclosing function body (spec
// 4.4.3); it is threaded down only through the handful of constructs that
// preserve tail position (do-block's last statement, if/piecewise's chosen
// arm, match's matched arm, short-circuit operators) and is false
// everywhere else, including every sub-expression of a CallExpression's
// own arguments.
func (e *Evaluator) evalExpr(expr ast.Expression, env *value.Environment, tail bool) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.NumberLiteral:
		return value.Number{Val: n.Value}, nil

	case *ast.BooleanLiteral:
		return value.Bool{Val: n.Value}, nil

	case *ast.StringLiteral:
		return value.Str{Val: n.Value}, nil

	case *ast.ComplexLiteral:
		return value.Complex{Val: complex(0, n.Imaginary)}, nil

	case *ast.NullLiteral:
		return value.Null{}, nil

	case *ast.Identifier:
		if v, ok := env.Get(n.Name); ok {
			return v, nil
		}
		return nil, undefinedErrorf("undefined identifier %q", n.Name)

	case *ast.RecExpression:
		if v, ok := env.Get("rec"); ok {
			return v, nil
		}
		return nil, undefinedErrorf("rec used outside a function body")

	case *ast.SelfExpression:
		if v, ok := env.Get("self"); ok {
			return v, nil
		}
		return nil, undefinedErrorf("self used outside a method")

	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(n, env)

	case *ast.RecordLiteral:
		return e.evalRecordLiteral(n, env)

	case *ast.IndexExpression:
		return e.evalIndex(n, env)

	case *ast.FieldAccess:
		return e.evalFieldAccess(n, env)

	case *ast.UnaryExpression:
		return e.evalUnary(n, env)

	case *ast.BinaryExpression:
		return e.evalBinary(n, env, tail)

	case *ast.CallExpression:
		return e.evalCall(n, env, tail)

	case *ast.LambdaExpression:
		return &value.UserDefined{
			Params:   n.Params,
			Body:     n.Body,
			Closure:  env,
			Variadic: len(n.Params) > 0 && n.Params[len(n.Params)-1].IsVariadic,
		}, nil

	case *ast.DoBlock:
		return e.evalDoBlock(n, env, tail)

	case *ast.TryExpression:
		return e.evalTry(n, env, tail)

	case *ast.ThrowExpression:
		return e.evalThrow(n, env)

	case *ast.MatchExpression:
		return e.evalMatch(n, env, tail)

	case *ast.WhileExpression:
		return e.evalWhile(n, env)

	case *ast.ForExpression:
		return e.evalFor(n, env)

	case *ast.GenerateBlock:
		return e.evalGenerateBlock(n, env), nil

	case *ast.YieldExpression:
		return e.evalYield(n, env)

	case *ast.ReturnExpression:
		v, err := e.evalExpr(n.Value, env, false)
		if err != nil {
			return nil, err
		}
		return nil, &returnSignal{Value: v}

	case *ast.EdgeExpression:
		return e.evalEdge(n, env)

	case *ast.RangeExpression:
		return nil, typeErrorf("range expression is only valid as an index")

	case *ast.SpreadExpression:
		return nil, typeErrorf("spread is only valid in an array, record, or call")

	default:
		return nil, typeErrorf("evaluator: unhandled expression %T", expr)
	}
}

// spreadInto flattens `...x` into dst when x is any iterable value (Vector,
// RealTensor, ComplexTensor), per spec 4.4.1.
func spreadInto(dst *[]value.Value, v value.Value) error {
	switch x := v.(type) {
	case *value.Vector:
		*dst = append(*dst, x.Items...)
	case *value.RealTensor:
		for _, f := range x.Data() {
			*dst = append(*dst, value.Number{Val: f})
		}
	case *value.ComplexTensor:
		for _, c := range x.Data() {
			*dst = append(*dst, value.Complex{Val: c})
		}
	default:
		return typeErrorf("cannot spread a %s", v.Type())
	}
	return nil
}

func (e *Evaluator) evalArrayLiteral(n *ast.ArrayLiteral, env *value.Environment) (value.Value, error) {
	items := make([]value.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		if sp, ok := el.(*ast.SpreadExpression); ok {
			v, err := e.evalExpr(sp.Value, env, false)
			if err != nil {
				return nil, err
			}
			if err := spreadInto(&items, v); err != nil {
				return nil, err
			}
			continue
		}
		v, err := e.evalExpr(el, env, false)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return &value.Vector{Items: items}, nil
}

func (e *Evaluator) evalRecordLiteral(n *ast.RecordLiteral, env *value.Environment) (value.Value, error) {
	rec := value.NewRecord()
	for _, f := range n.Fields {
		if f.Spread != nil {
			v, err := e.evalExpr(f.Spread, env, false)
			if err != nil {
				return nil, err
			}
			src, ok := v.(*value.Record)
			if !ok {
				return nil, typeErrorf("cannot spread a %s into a record", v.Type())
			}
			for _, name := range src.Names {
				field := src.Fields[name]
				rec.Set(name, field.Value, field.IsMut)
			}
			continue
		}
		v, err := e.evalExpr(f.Value, env, false)
		if err != nil {
			return nil, err
		}
		rec.Set(f.Name, v, f.IsMut)
	}
	return rec, nil
}

func (e *Evaluator) evalFieldAccess(n *ast.FieldAccess, env *value.Environment) (value.Value, error) {
	target, err := e.evalExpr(n.Target, env, false)
	if err != nil {
		return nil, err
	}
	rec, ok := target.(*value.Record)
	if !ok {
		return nil, typeErrorf("cannot access field %q on a %s", n.Field, target.Type())
	}
	v, ok := rec.Get(n.Field)
	if !ok {
		return nil, undefinedErrorf("record has no field %q", n.Field)
	}
	return v, nil
}

func (e *Evaluator) evalUnary(n *ast.UnaryExpression, env *value.Environment) (value.Value, error) {
	v, err := e.evalExpr(n.Operand, env, false)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "-":
		switch x := v.(type) {
		case value.Number:
			return value.Number{Val: -x.Val}, nil
		case value.Complex:
			return value.Complex{Val: -x.Val}, nil
		case *value.RealTensor:
			neg := tensor.ScalarOp(x.Real, -1, func(a, b float64) float64 { return a * b }, true)
			return value.NewRealTensor(neg), nil
		default:
			return nil, typeErrorf("unary - is not defined for %s", v.Type())
		}
	case "!":
		return value.Bool{Val: !value.Truthy(v)}, nil
	default:
		return nil, typeErrorf("unknown unary operator %q", n.Operator)
	}
}

func (e *Evaluator) evalEdge(n *ast.EdgeExpression, env *value.Environment) (value.Value, error) {
	from, err := e.evalExpr(n.From, env, false)
	if err != nil {
		return nil, err
	}
	to, err := e.evalExpr(n.To, env, false)
	if err != nil {
		return nil, err
	}
	var props *value.Record
	if n.Properties != nil {
		v, err := e.evalRecordLiteral(n.Properties, env)
		if err != nil {
			return nil, err
		}
		props = v.(*value.Record)
	}
	return &value.Edge{From: from, To: to, Directed: n.Directed, Properties: props}, nil
}
