package value

import "github.com/eddndev/achronyme/internal/tensor"

// RealTensor wraps internal/tensor.Real as a Value (spec 3.1: Vector is a
// rank-1 RealTensor is the n-d generalization). Vectors of numbers coming
// from literal syntax are built as *Vector (heterogeneous, spec 3.1); once
// promoted into dense numeric form (by tensor builtins) they become
// *RealTensor.
type RealTensor struct {
	*tensor.Real
}

func NewRealTensor(t *tensor.Real) *RealTensor { return &RealTensor{t} }

func (t *RealTensor) Type() string { return "Tensor" }
func (t *RealTensor) String() string {
	return t.Real.String()
}

// ComplexTensor wraps internal/tensor.Complex as a Value.
type ComplexTensor struct {
	*tensor.Complex
}

func NewComplexTensor(t *tensor.Complex) *ComplexTensor { return &ComplexTensor{t} }

func (t *ComplexTensor) Type() string { return "ComplexTensor" }
func (t *ComplexTensor) String() string {
	return t.Complex.String()
}

// Complex is a scalar complex number (spec 3.1), distinct from a rank-0/1
// ComplexTensor so that arithmetic on bare complex literals stays cheap.
type Complex struct {
	Val complex128
}

func (c Complex) Type() string   { return "Complex" }
func (c Complex) String() string { return tensor.FormatComplex(c.Val) }
