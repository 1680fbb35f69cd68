package evaluator

import (
	"github.com/eddndev/achronyme/internal/tensor"
	"github.com/eddndev/achronyme/internal/value"
)

// builtin constructs a *value.Builtin, the uniform shape every
// builtins_*.go registration file uses (grounded on the teacher's
// per-concern builtins_*.go files, one Go function per builtin name).
func builtin(name string, arity int, variadic bool, fn func(args []value.Value) (value.Value, error)) *value.Builtin {
	return &value.Builtin{Name: name, ArityN: arity, Variadic: variadic, Fn: fn}
}

func def(env *value.Environment, b *value.Builtin) {
	env.Define(b.Name, b, false)
}

func asNumber(name string, v value.Value) (float64, error) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, typeErrorf("%s expects a Number, got %s", name, v.Type())
	}
	return n.Val, nil
}

func asString(name string, v value.Value) (string, error) {
	s, ok := v.(value.Str)
	if !ok {
		return "", typeErrorf("%s expects a String, got %s", name, v.Type())
	}
	return s.Val, nil
}

func asFunction(name string, v value.Value) (value.Function, error) {
	f, ok := v.(value.Function)
	if !ok {
		return nil, typeErrorf("%s expects a Function, got %s", name, v.Type())
	}
	return f, nil
}

func asVector(name string, v value.Value) (*value.Vector, error) {
	vec, ok := v.(*value.Vector)
	if !ok {
		return nil, typeErrorf("%s expects a Vector, got %s", name, v.Type())
	}
	return vec, nil
}

// asItems yields the uniform element slice of a Vector or tensor, the
// shape every collection builtin (len/sum/map/filter/...) accepts.
func asItems(name string, v value.Value) ([]value.Value, error) {
	items, ok := collectionItems(v)
	if !ok {
		return nil, typeErrorf("%s expects a Vector or Tensor, got %s", name, v.Type())
	}
	return items, nil
}

// asRealTensor coerces a Vector of Numbers or a RealTensor into
// *tensor.Real, the common currency internal/tensor and internal/linalg
// operate on.
func asRealTensor(name string, v value.Value) (*tensor.Real, error) {
	switch x := v.(type) {
	case *value.RealTensor:
		return x.Real, nil
	case *value.Vector:
		data := make([]float64, len(x.Items))
		for i, item := range x.Items {
			n, ok := item.(value.Number)
			if !ok {
				return nil, typeErrorf("%s expects a numeric Vector, element %d is a %s", name, i, item.Type())
			}
			data[i] = n.Val
		}
		t, err := tensor.New(data, []int{len(data)})
		if err != nil {
			return nil, shapeErrorf("%s", err.Error())
		}
		return t, nil
	default:
		return nil, typeErrorf("%s expects a Vector or Tensor, got %s", name, v.Type())
	}
}

func asComplexTensor(name string, v value.Value) (*tensor.Complex, error) {
	switch x := v.(type) {
	case *value.ComplexTensor:
		return x.Complex, nil
	case *value.RealTensor:
		return tensor.Promote(x.Real), nil
	case *value.Vector:
		data := make([]complex128, len(x.Items))
		for i, item := range x.Items {
			switch n := item.(type) {
			case value.Number:
				data[i] = complex(n.Val, 0)
			case value.Complex:
				data[i] = n.Val
			default:
				return nil, typeErrorf("%s expects a numeric Vector, element %d is a %s", name, i, item.Type())
			}
		}
		t, err := tensor.NewComplex(data, []int{len(data)})
		if err != nil {
			return nil, shapeErrorf("%s", err.Error())
		}
		return t, nil
	default:
		return nil, typeErrorf("%s expects a Vector or Tensor, got %s", name, v.Type())
	}
}

func realTensorToValue(t *tensor.Real, err error) (value.Value, error) {
	if err != nil {
		return nil, shapeErrorf("%s", err.Error())
	}
	return value.NewRealTensor(t), nil
}

func numberSlice(data []float64) *value.Vector {
	items := make([]value.Value, len(data))
	for i, f := range data {
		items[i] = value.Number{Val: f}
	}
	return &value.Vector{Items: items}
}
