package evaluator

import (
	"math"

	"github.com/eddndev/achronyme/internal/tensor"
	"github.com/eddndev/achronyme/internal/value"
	"github.com/eddndev/achronyme/pkg/ast"
)

// evalBinary implements spec 4.4.2's operator semantics: short-circuit
// &&/||, string concatenation via +, Number/Complex promotion, and
// scalar/tensor and tensor/tensor broadcasting delegated to
// internal/tensor. tail propagates only into a short-circuit operator's
// selected branch, since that branch is the function's result whenever
// the whole expression is itself in tail position (spec 4.4.3).
func (e *Evaluator) evalBinary(n *ast.BinaryExpression, env *value.Environment, tail bool) (value.Value, error) {
	switch n.Operator {
	case "&&":
		left, err := e.evalExpr(n.Left, env, false)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(left) {
			return left, nil
		}
		return e.evalExpr(n.Right, env, tail)
	case "||":
		left, err := e.evalExpr(n.Left, env, false)
		if err != nil {
			return nil, err
		}
		if value.Truthy(left) {
			return left, nil
		}
		return e.evalExpr(n.Right, env, tail)
	}

	left, err := e.evalExpr(n.Left, env, false)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(n.Right, env, false)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "==":
		return value.Bool{Val: value.Equal(left, right)}, nil
	case "!=":
		return value.Bool{Val: !value.Equal(left, right)}, nil
	case "<", "<=", ">", ">=":
		return compareNumbers(n.Operator, left, right)
	case "+":
		if ls, ok := left.(value.Str); ok {
			return value.Str{Val: ls.Val + stringifyConcat(right)}, nil
		}
		if rs, ok := right.(value.Str); ok {
			return value.Str{Val: stringifyConcat(left) + rs.Val}, nil
		}
	}

	return applyArith(n.Operator, left, right)
}

func stringifyConcat(v value.Value) string {
	if s, ok := v.(value.Str); ok {
		return s.Val
	}
	return value.Print(v)
}

func compareNumbers(op string, left, right value.Value) (value.Value, error) {
	ln, ok1 := left.(value.Number)
	rn, ok2 := right.(value.Number)
	if !ok1 || !ok2 {
		if ls, ok := left.(value.Str); ok {
			if rs, ok := right.(value.Str); ok {
				return value.Bool{Val: compareStrings(op, ls.Val, rs.Val)}, nil
			}
		}
		return nil, typeErrorf("operator %s requires two Numbers (or two Strings), got %s and %s", op, left.Type(), right.Type())
	}
	var result bool
	switch op {
	case "<":
		result = ln.Val < rn.Val
	case "<=":
		result = ln.Val <= rn.Val
	case ">":
		result = ln.Val > rn.Val
	case ">=":
		result = ln.Val >= rn.Val
	}
	return value.Bool{Val: result}, nil
}

func compareStrings(op, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	default:
		return a >= b
	}
}

func numOp(op string) func(a, b float64) float64 {
	switch op {
	case "+":
		return func(a, b float64) float64 { return a + b }
	case "-":
		return func(a, b float64) float64 { return a - b }
	case "*":
		return func(a, b float64) float64 { return a * b }
	case "/":
		return func(a, b float64) float64 { return a / b }
	case "%":
		return math.Mod
	case "^":
		return math.Pow
	}
	return nil
}

func complexOp(op string) func(a, b complex128) complex128 {
	switch op {
	case "+":
		return func(a, b complex128) complex128 { return a + b }
	case "-":
		return func(a, b complex128) complex128 { return a - b }
	case "*":
		return func(a, b complex128) complex128 { return a * b }
	case "/":
		return func(a, b complex128) complex128 { return a / b }
	}
	return nil
}

// applyArith implements spec 4.4.2's promotion/broadcast ladder: plain
// Number/Number arithmetic, Number/Complex promotion, and scalar/tensor or
// tensor/tensor broadcasting via internal/tensor.
func applyArith(op string, left, right value.Value) (value.Value, error) {
	fOp := numOp(op)
	if fOp == nil {
		return nil, typeErrorf("unknown operator %q", op)
	}

	if ln, ok := left.(value.Number); ok {
		if rn, ok := right.(value.Number); ok {
			if op == "/" && rn.Val == 0 {
				return nil, value.NewError(value.KindZeroDivision, "division by zero")
			}
			return value.Number{Val: fOp(ln.Val, rn.Val)}, nil
		}
	}

	if isComplexTensor(left) || isComplexTensor(right) {
		return applyComplexTensorArith(op, left, right)
	}

	if isComplexLike(left) || isComplexLike(right) {
		lc, err := toComplex(left)
		if err != nil {
			return nil, err
		}
		rc, err := toComplex(right)
		if err != nil {
			return nil, err
		}
		cOp := complexOp(op)
		if cOp == nil {
			return nil, typeErrorf("operator %s is not defined for Complex", op)
		}
		return value.Complex{Val: cOp(lc, rc)}, nil
	}

	if lt, ok := left.(*value.RealTensor); ok {
		if rt, ok := right.(*value.RealTensor); ok {
			out, err := tensor.BinOp(lt.Real, rt.Real, fOp)
			if err != nil {
				return nil, shapeErrorf("%s", err.Error())
			}
			return value.NewRealTensor(out), nil
		}
		if rn, ok := right.(value.Number); ok {
			out := tensor.ScalarOp(lt.Real, rn.Val, fOp, true)
			return value.NewRealTensor(out), nil
		}
	}
	if rt, ok := right.(*value.RealTensor); ok {
		if ln, ok := left.(value.Number); ok {
			out := tensor.ScalarOp(rt.Real, ln.Val, fOp, false)
			return value.NewRealTensor(out), nil
		}
	}

	return nil, typeErrorf("operator %s is not defined between %s and %s", op, left.Type(), right.Type())
}

func isComplexLike(v value.Value) bool {
	_, ok := v.(value.Complex)
	return ok
}

func isComplexTensor(v value.Value) bool {
	_, ok := v.(*value.ComplexTensor)
	return ok
}

func toComplex(v value.Value) (complex128, error) {
	switch x := v.(type) {
	case value.Number:
		return complex(x.Val, 0), nil
	case value.Complex:
		return x.Val, nil
	default:
		return 0, typeErrorf("cannot promote %s to Complex", v.Type())
	}
}

// applyComplexTensorArith handles every operator combination involving at
// least one *value.ComplexTensor operand: ComplexTensor/ComplexTensor and
// ComplexTensor/scalar broadcasting (mirroring applyArith's RealTensor
// paths), plus RealTensor/ComplexTensor mixes promoted via tensor.Promote
// (spec 4.4.2's Number/Complex promotion rule, generalized to tensors so
// arithmetic on fft()'s output works instead of erroring).
func applyComplexTensorArith(op string, left, right value.Value) (value.Value, error) {
	cOp := complexOp(op)
	if cOp == nil {
		return nil, typeErrorf("operator %s is not defined for ComplexTensor", op)
	}

	lct, lIsCT := left.(*value.ComplexTensor)
	rct, rIsCT := right.(*value.ComplexTensor)

	if lIsCT && rIsCT {
		out, err := tensor.BinOpComplex(lct.Complex, rct.Complex, cOp)
		if err != nil {
			return nil, shapeErrorf("%s", err.Error())
		}
		return value.NewComplexTensor(out), nil
	}
	if lIsCT {
		if rt, ok := right.(*value.RealTensor); ok {
			out, err := tensor.BinOpComplex(lct.Complex, tensor.Promote(rt.Real), cOp)
			if err != nil {
				return nil, shapeErrorf("%s", err.Error())
			}
			return value.NewComplexTensor(out), nil
		}
		rc, err := toComplex(right)
		if err != nil {
			return nil, err
		}
		return value.NewComplexTensor(tensor.ScalarOpComplex(lct.Complex, rc, cOp, true)), nil
	}
	if rIsCT {
		if lt, ok := left.(*value.RealTensor); ok {
			out, err := tensor.BinOpComplex(tensor.Promote(lt.Real), rct.Complex, cOp)
			if err != nil {
				return nil, shapeErrorf("%s", err.Error())
			}
			return value.NewComplexTensor(out), nil
		}
		lc, err := toComplex(left)
		if err != nil {
			return nil, err
		}
		return value.NewComplexTensor(tensor.ScalarOpComplex(rct.Complex, lc, cOp, false)), nil
	}

	return nil, typeErrorf("operator %s is not defined between %s and %s", op, left.Type(), right.Type())
}
