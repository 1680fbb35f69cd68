package evaluator

import (
	"github.com/eddndev/achronyme/internal/value"
	"github.com/eddndev/achronyme/pkg/ast"
)

// evalMatch implements `match expr { patt => body, ... }` (spec 4.4.5):
// the first arm whose pattern matches wins; its bindings are visible in
// its own body, which is in tail position exactly when the match is.
func (e *Evaluator) evalMatch(n *ast.MatchExpression, env *value.Environment, tail bool) (value.Value, error) {
	target, err := e.evalExpr(n.Target, env, false)
	if err != nil {
		return nil, err
	}
	for _, arm := range n.Arms {
		scope := env.Push()
		ok, err := e.matchPattern(arm.Pattern, target, scope)
		if err != nil {
			return nil, err
		}
		if ok {
			return e.evalExpr(arm.Body, scope, tail)
		}
	}
	return nil, matchErrorf("match: no pattern matched a %s", target.Type())
}

// matchPattern reports whether pat matches v, defining any bindings it
// introduces directly into scope (spec 4.4.5).
func (e *Evaluator) matchPattern(pat ast.Pattern, v value.Value, scope *value.Environment) (bool, error) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return true, nil

	case *ast.VarPattern:
		scope.Define(p.Name, v, false)
		return true, nil

	case *ast.LiteralPattern:
		lit, err := e.evalExpr(p.Literal, scope, false)
		if err != nil {
			return false, err
		}
		return value.Equal(lit, v), nil

	case *ast.TypePattern:
		return matchTypeTag(p.TypeName, v), nil

	case *ast.RecordPattern:
		rec, ok := v.(*value.Record)
		if !ok {
			return false, nil
		}
		for _, f := range p.Fields {
			fv, ok := rec.Get(f.Name)
			if !ok {
				return false, nil
			}
			matched, err := e.matchPattern(f.Pattern, fv, scope)
			if err != nil {
				return false, err
			}
			if !matched {
				return false, nil
			}
		}
		return true, nil

	case *ast.VectorPattern:
		items, ok := collectionItems(v)
		if !ok {
			return false, nil
		}
		k := len(p.Elements)
		if p.HasRest {
			if len(items) < k {
				return false, nil
			}
		} else if len(items) != k {
			return false, nil
		}
		for i, ep := range p.Elements {
			matched, err := e.matchPattern(ep, items[i], scope)
			if err != nil {
				return false, err
			}
			if !matched {
				return false, nil
			}
		}
		if p.HasRest {
			rest := append([]value.Value(nil), items[k:]...)
			scope.Define(p.Rest, &value.Vector{Items: rest}, false)
		}
		return true, nil

	case *ast.GuardedPattern:
		matched, err := e.matchPattern(p.Pattern, v, scope)
		if err != nil || !matched {
			return false, err
		}
		cond, err := e.evalExpr(p.Cond, scope, false)
		if err != nil {
			return false, err
		}
		return value.Truthy(cond), nil

	default:
		return false, typeErrorf("evaluator: unhandled pattern %T", pat)
	}
}

// matchTypeTag implements the type-tag pattern (spec 4.4.5): "Any" matches
// anything, "Number" matches any numeric value (Number or Complex), and
// every other name matches type(v) exactly.
func matchTypeTag(name string, v value.Value) bool {
	switch name {
	case "Any":
		return true
	case "Number":
		switch v.(type) {
		case value.Number, value.Complex:
			return true
		default:
			return false
		}
	default:
		return v.Type() == name
	}
}

// collectionItems extracts a uniform []Value from a Vector or any tensor,
// the two collection shapes spec 4.4.5's vector pattern matches against.
func collectionItems(v value.Value) ([]value.Value, bool) {
	switch x := v.(type) {
	case *value.Vector:
		return x.Items, true
	case *value.RealTensor:
		items := make([]value.Value, len(x.Data()))
		for i, f := range x.Data() {
			items[i] = value.Number{Val: f}
		}
		return items, true
	case *value.ComplexTensor:
		items := make([]value.Value, len(x.Data()))
		for i, c := range x.Data() {
			items[i] = value.Complex{Val: c}
		}
		return items, true
	default:
		return nil, false
	}
}
