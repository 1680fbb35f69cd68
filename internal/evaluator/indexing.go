package evaluator

import (
	"github.com/eddndev/achronyme/internal/tensor"
	"github.com/eddndev/achronyme/internal/value"
	"github.com/eddndev/achronyme/pkg/ast"
)

// evalIndex implements spec 4.4.1's indexing rule: tensor indices delegate
// to internal/tensor; Vectors support a single integer index or a single
// range slice; Strings index/slice by rune, not byte.
func (e *Evaluator) evalIndex(n *ast.IndexExpression, env *value.Environment) (value.Value, error) {
	target, err := e.evalExpr(n.Target, env, false)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *value.RealTensor:
		idxs, err := e.evalTensorIndices(n.Indices, env, t.Shape())
		if err != nil {
			return nil, err
		}
		if allScalar(n.Indices) && len(n.Indices) == t.Rank() {
			coords := make([]int, len(idxs))
			for i, ix := range idxs {
				coords[i] = ix.Start
			}
			f, err := t.At(coords)
			if err != nil {
				return nil, indexErrorf("%s", err.Error())
			}
			return value.Number{Val: f}, nil
		}
		out, err := t.Index(idxs)
		if err != nil {
			return nil, indexErrorf("%s", err.Error())
		}
		return value.NewRealTensor(out), nil

	case *value.Vector:
		if len(n.Indices) != 1 {
			return nil, shapeErrorf("vector indexing expects exactly 1 index, got %d", len(n.Indices))
		}
		return e.evalVectorIndex(t, n.Indices[0], env)

	case value.Str:
		if len(n.Indices) != 1 {
			return nil, shapeErrorf("string indexing expects exactly 1 index, got %d", len(n.Indices))
		}
		return e.evalStringIndex(t, n.Indices[0], env)

	default:
		return nil, typeErrorf("cannot index a %s", target.Type())
	}
}

func allScalar(idxs []ast.Expression) bool {
	for _, ix := range idxs {
		if _, ok := ix.(*ast.RangeExpression); ok {
			return false
		}
	}
	return true
}

func (e *Evaluator) evalTensorIndices(idxs []ast.Expression, env *value.Environment, shape []int) ([]tensor.Idx, error) {
	out := make([]tensor.Idx, len(idxs))
	for axis, ix := range idxs {
		if rg, ok := ix.(*ast.RangeExpression); ok {
			start, hasStart, end, hasEnd, err := e.evalRangeBounds(rg, env)
			if err != nil {
				return nil, err
			}
			out[axis] = tensor.RangeIdx(start, end, hasStart, hasEnd)
			continue
		}
		v, err := e.evalExpr(ix, env, false)
		if err != nil {
			return nil, err
		}
		n, ok := v.(value.Number)
		if !ok {
			return nil, typeErrorf("index %d must be a Number, got %s", axis, v.Type())
		}
		out[axis] = tensor.ScalarIdx(int(n.Val))
	}
	return out, nil
}

func (e *Evaluator) evalRangeBounds(rg *ast.RangeExpression, env *value.Environment) (start int, hasStart bool, end int, hasEnd bool, err error) {
	if rg.Start != nil {
		v, err := e.evalExpr(rg.Start, env, false)
		if err != nil {
			return 0, false, 0, false, err
		}
		n, ok := v.(value.Number)
		if !ok {
			return 0, false, 0, false, typeErrorf("range bound must be a Number, got %s", v.Type())
		}
		start, hasStart = int(n.Val), true
	}
	if rg.End != nil {
		v, err := e.evalExpr(rg.End, env, false)
		if err != nil {
			return 0, false, 0, false, err
		}
		n, ok := v.(value.Number)
		if !ok {
			return 0, false, 0, false, typeErrorf("range bound must be a Number, got %s", v.Type())
		}
		end, hasEnd = int(n.Val), true
	}
	return start, hasStart, end, hasEnd, nil
}

func (e *Evaluator) evalVectorIndex(v *value.Vector, ix ast.Expression, env *value.Environment) (value.Value, error) {
	n := len(v.Items)
	if rg, ok := ix.(*ast.RangeExpression); ok {
		start, hasStart, end, hasEnd, err := e.evalRangeBounds(rg, env)
		if err != nil {
			return nil, err
		}
		s, en := clampRange(start, hasStart, end, hasEnd, n)
		items := make([]value.Value, en-s)
		copy(items, v.Items[s:en])
		return &value.Vector{Items: items}, nil
	}
	idxV, err := e.evalExpr(ix, env, false)
	if err != nil {
		return nil, err
	}
	num, ok := idxV.(value.Number)
	if !ok {
		return nil, typeErrorf("vector index must be a Number, got %s", idxV.Type())
	}
	i := int(num.Val)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil, indexErrorf("index %d out of bounds for vector of length %d", int(num.Val), n)
	}
	return v.Items[i], nil
}

func (e *Evaluator) evalStringIndex(s value.Str, ix ast.Expression, env *value.Environment) (value.Value, error) {
	runes := []rune(s.Val)
	n := len(runes)
	if rg, ok := ix.(*ast.RangeExpression); ok {
		start, hasStart, end, hasEnd, err := e.evalRangeBounds(rg, env)
		if err != nil {
			return nil, err
		}
		st, en := clampRange(start, hasStart, end, hasEnd, n)
		return value.Str{Val: string(runes[st:en])}, nil
	}
	idxV, err := e.evalExpr(ix, env, false)
	if err != nil {
		return nil, err
	}
	num, ok := idxV.(value.Number)
	if !ok {
		return nil, typeErrorf("string index must be a Number, got %s", idxV.Type())
	}
	i := int(num.Val)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil, indexErrorf("index %d out of bounds for string of length %d", int(num.Val), n)
	}
	return value.Str{Val: string(runes[i])}, nil
}

// clampRange resolves a half-open range against a collection of length n;
// ranges clamp rather than raise IndexError (spec section 7).
func clampRange(start int, hasStart bool, end int, hasEnd bool, n int) (int, int) {
	if !hasStart {
		start = 0
	} else if start < 0 {
		start += n
	}
	if !hasEnd {
		end = n
	} else if end < 0 {
		end += n
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}
