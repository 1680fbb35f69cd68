package evaluator

import (
	"math"

	"github.com/eddndev/achronyme/internal/linalg"
	"github.com/eddndev/achronyme/internal/tensor"
	"github.com/eddndev/achronyme/internal/value"
)

// registerTensorBuiltins wires the tensor/linear-algebra catalog of spec
// section 6 (dot/cross/norm/normalize/transpose plus the
// decomposition-backed det/inverse/solve/eigenvalues and the construction
// builtins linspace/zeros/ones/eye) over internal/tensor and
// internal/linalg.
func registerTensorBuiltins(env *value.Environment) {
	def(env, builtin("dot", 2, false, func(args []value.Value) (value.Value, error) {
		a, err := asRealTensor("dot", args[0])
		if err != nil {
			return nil, err
		}
		b, err := asRealTensor("dot", args[1])
		if err != nil {
			return nil, err
		}
		out, err := tensor.MatMul(a, b)
		if err != nil {
			return nil, shapeErrorf("%s", err.Error())
		}
		if a.Rank() == 1 && b.Rank() == 1 {
			// spec 4.2: 1-D dotted with 1-D gives a scalar, not a shape-[1]
			// tensor.
			return value.Number{Val: out.Data()[0]}, nil
		}
		return value.NewRealTensor(out), nil
	}))

	def(env, builtin("cross", 2, false, func(args []value.Value) (value.Value, error) {
		a, err := asRealTensor("cross", args[0])
		if err != nil {
			return nil, err
		}
		b, err := asRealTensor("cross", args[1])
		if err != nil {
			return nil, err
		}
		if a.Rank() != 1 || b.Rank() != 1 || len(a.Data()) != 3 || len(b.Data()) != 3 {
			return nil, shapeErrorf("cross: both operands must be length-3 vectors")
		}
		ax, ay, az := a.Data()[0], a.Data()[1], a.Data()[2]
		bx, by, bz := b.Data()[0], b.Data()[1], b.Data()[2]
		out, err := tensor.New([]float64{ay*bz - az*by, az*bx - ax*bz, ax*by - ay*bx}, []int{3})
		return realTensorToValue(out, err)
	}))

	def(env, builtin("norm", 1, false, func(args []value.Value) (value.Value, error) {
		t, err := asRealTensor("norm", args[0])
		if err != nil {
			return nil, err
		}
		sum := 0.0
		for _, v := range t.Data() {
			sum += v * v
		}
		return value.Number{Val: math.Sqrt(sum)}, nil
	}))

	def(env, builtin("normalize", 1, false, func(args []value.Value) (value.Value, error) {
		t, err := asRealTensor("normalize", args[0])
		if err != nil {
			return nil, err
		}
		sum := 0.0
		for _, v := range t.Data() {
			sum += v * v
		}
		n := math.Sqrt(sum)
		if n == 0 {
			return nil, numericErrorf("normalize: zero vector has no direction")
		}
		return realTensorToValue(tensor.ScalarOp(t, n, func(x, y float64) float64 { return x / y }, true), nil)
	}))

	def(env, builtin("transpose", 1, false, func(args []value.Value) (value.Value, error) {
		t, err := asRealTensor("transpose", args[0])
		if err != nil {
			return nil, err
		}
		return realTensorToValue(t.Transpose())
	}))

	def(env, builtin("det", 1, false, func(args []value.Value) (value.Value, error) {
		t, err := asRealTensor("det", args[0])
		if err != nil {
			return nil, err
		}
		d, err := linalg.Det(t)
		if err != nil {
			return nil, linalgErr(err)
		}
		return value.Number{Val: d}, nil
	}))

	def(env, builtin("trace", 1, false, func(args []value.Value) (value.Value, error) {
		t, err := asRealTensor("trace", args[0])
		if err != nil {
			return nil, err
		}
		if t.Rank() != 2 || t.Shape()[0] != t.Shape()[1] {
			return nil, shapeErrorf("trace: matrix must be square")
		}
		n := t.Shape()[0]
		sum := 0.0
		for i := 0; i < n; i++ {
			v, _ := t.At([]int{i, i})
			sum += v
		}
		return value.Number{Val: sum}, nil
	}))

	def(env, builtin("inverse", 1, false, func(args []value.Value) (value.Value, error) {
		t, err := asRealTensor("inverse", args[0])
		if err != nil {
			return nil, err
		}
		inv, err := linalg.Inverse(t)
		if err != nil {
			return nil, linalgErr(err)
		}
		return realTensorToValue(inv, nil)
	}))

	def(env, builtin("eigenvalues", 1, false, func(args []value.Value) (value.Value, error) {
		t, err := asRealTensor("eigenvalues", args[0])
		if err != nil {
			return nil, err
		}
		c, err := linalg.Eigenvalues(t)
		if err != nil {
			return nil, linalgErr(err)
		}
		if c.AllNearReal(1e-10) {
			return value.NewRealTensor(c.ToReal()), nil
		}
		return value.NewComplexTensor(c), nil
	}))

	def(env, builtin("linspace", 3, false, func(args []value.Value) (value.Value, error) {
		a, err := asNumber("linspace", args[0])
		if err != nil {
			return nil, err
		}
		b, err := asNumber("linspace", args[1])
		if err != nil {
			return nil, err
		}
		n, err := asNumber("linspace", args[2])
		if err != nil {
			return nil, err
		}
		t, err := tensor.Linspace(a, b, int(n))
		if err != nil {
			return nil, valueErrorf("%s", err.Error())
		}
		return value.NewRealTensor(t), nil
	}))

	def(env, builtin("zeros", 1, true, func(args []value.Value) (value.Value, error) {
		shape, err := shapeArgs("zeros", args)
		if err != nil {
			return nil, err
		}
		return realTensorToValue(tensor.Zeros(shape))
	}))

	def(env, builtin("ones", 1, true, func(args []value.Value) (value.Value, error) {
		shape, err := shapeArgs("ones", args)
		if err != nil {
			return nil, err
		}
		return realTensorToValue(tensor.Ones(shape))
	}))

	def(env, builtin("eye", 1, false, func(args []value.Value) (value.Value, error) {
		n, err := asNumber("eye", args[0])
		if err != nil {
			return nil, err
		}
		t, err := tensor.Eye(int(n))
		if err != nil {
			return nil, valueErrorf("%s", err.Error())
		}
		return value.NewRealTensor(t), nil
	}))
}

// shapeArgs accepts either a single Vector of dimension sizes or several
// scalar Number arguments, matching zeros/ones' `zeros([2, 3])` and
// `zeros(2, 3)` call forms.
func shapeArgs(name string, args []value.Value) ([]int, error) {
	if len(args) == 1 {
		if vec, ok := args[0].(*value.Vector); ok {
			shape := make([]int, len(vec.Items))
			for i, it := range vec.Items {
				n, err := asNumber(name, it)
				if err != nil {
					return nil, err
				}
				shape[i] = int(n)
			}
			return shape, nil
		}
	}
	shape := make([]int, len(args))
	for i, a := range args {
		n, err := asNumber(name, a)
		if err != nil {
			return nil, err
		}
		shape[i] = int(n)
	}
	return shape, nil
}

// linalgErr maps internal/linalg's sentinel error types onto the runtime
// error taxonomy of spec section 7.
func linalgErr(err error) error {
	switch err.(type) {
	case *linalg.ShapeError:
		return shapeErrorf("%s", err.Error())
	case *linalg.SingularError:
		return value.NewError(value.KindSingularError, err.Error())
	case *linalg.NumericError:
		return numericErrorf("%s", err.Error())
	default:
		return valueErrorf("%s", err.Error())
	}
}
