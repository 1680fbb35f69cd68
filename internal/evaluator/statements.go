package evaluator

import (
	"github.com/eddndev/achronyme/internal/value"
	"github.com/eddndev/achronyme/pkg/ast"
)

// evalStatement executes one statement, returning its value when it is (or
// wraps) an expression so do-blocks and Program can surface the final
// result (spec 4.4.4: "the block's value is the value of the final
// expression").
func (e *Evaluator) evalStatement(stmt ast.Statement, env *value.Environment) (value.Value, error) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		v, err := e.evalExpr(s.Value, env, false)
		if err != nil {
			return nil, err
		}
		if err := e.Types.Check(s.Type, v); err != nil {
			return nil, typeErrorf("%s", err.Error())
		}
		env.Define(s.Name, v, false)
		return nil, nil

	case *ast.MutStatement:
		v, err := e.evalExpr(s.Value, env, false)
		if err != nil {
			return nil, err
		}
		if err := e.Types.Check(s.Type, v); err != nil {
			return nil, typeErrorf("%s", err.Error())
		}
		env.Define(s.Name, v, true)
		return nil, nil

	case *ast.TypeAliasStatement:
		e.Types.Define(s.Name, s.Type)
		return nil, nil

	case *ast.AssignStatement:
		return e.evalAssign(s, env)

	case *ast.ExpressionStatement:
		return e.evalExpr(s.Expression, env, false)

	case *ast.ImportStatement:
		return nil, undefinedErrorf("import: module system not available in this environment")

	case *ast.ExportStatement:
		return e.evalStatement(s.Inner, env)

	default:
		return nil, typeErrorf("evaluator: unhandled statement %T", stmt)
	}
}

func (e *Evaluator) evalAssign(s *ast.AssignStatement, env *value.Environment) (value.Value, error) {
	v, err := e.evalExpr(s.Value, env, false)
	if err != nil {
		return nil, err
	}
	switch target := s.Target.(type) {
	case *ast.Identifier:
		ok, immutable := env.Set(target.Name, v)
		if !ok {
			if immutable {
				return nil, mutabilityErrorf("cannot assign to immutable binding %q", target.Name)
			}
			return nil, undefinedErrorf("undefined identifier %q", target.Name)
		}
		return v, nil

	case *ast.FieldAccess:
		recv, err := e.evalExpr(target.Target, env, false)
		if err != nil {
			return nil, err
		}
		rec, ok := recv.(*value.Record)
		if !ok {
			return nil, typeErrorf("cannot assign field %q on a %s", target.Field, recv.Type())
		}
		field, ok := rec.Fields[target.Field]
		if !ok {
			return nil, undefinedErrorf("record has no field %q", target.Field)
		}
		if !field.IsMut {
			return nil, mutabilityErrorf("field %q is not mutable", target.Field)
		}
		rec.Set(target.Field, v, true)
		return v, nil

	default:
		return nil, typeErrorf("evaluator: unsupported assignment target %T", s.Target)
	}
}
