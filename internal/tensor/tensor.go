// Package tensor implements the dense N-D array kernel (spec section 4.2,
// component B): construction, indexing, broadcasting, and element-wise
// arithmetic over row-major real and complex doubles. Grounded on the
// teacher's array-handling style in internal/interp/runtime/array.go
// (value-semantics slices, explicit shape/length invariants) generalized
// from 1-D DWScript arrays to N-D numeric tensors.
package tensor

import (
	"fmt"
	"strings"
)

// Kind-specific sentinel error types so callers (the evaluator) can map
// them onto the runtime Error kinds of spec section 7 without string
// matching.
type ShapeError struct{ Msg string }

func (e *ShapeError) Error() string { return e.Msg }

type EmptyError struct{ Msg string }

func (e *EmptyError) Error() string { return e.Msg }

type IndexError struct{ Msg string }

func (e *IndexError) Error() string { return e.Msg }

type ValueError struct{ Msg string }

func (e *ValueError) Error() string { return e.Msg }

// Real is a dense, row-major, rank>=1 array of float64.
type Real struct {
	data  []float64
	shape []int
}

// New builds a Real tensor from flat row-major data and a shape; it
// validates spec 3.1's invariant product(shape) == len(data).
func New(data []float64, shape []int) (*Real, error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	if Size(shape) != len(data) {
		return nil, &ShapeError{Msg: fmt.Sprintf("tensor: data length %d does not match shape %v (expected %d)", len(data), shape, Size(shape))}
	}
	cp := make([]float64, len(data))
	copy(cp, data)
	return &Real{data: cp, shape: append([]int(nil), shape...)}, nil
}

func validateShape(shape []int) error {
	if len(shape) == 0 {
		return &ShapeError{Msg: "tensor: rank must be >= 1"}
	}
	for _, d := range shape {
		if d < 0 {
			return &ShapeError{Msg: fmt.Sprintf("tensor: negative shape dimension %d", d)}
		}
	}
	return nil
}

// Size returns product(shape), the number of elements a tensor of that
// shape holds (0 for any zero dimension).
func Size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// Data returns the tensor's flat row-major backing slice. Callers must not
// mutate it; Value-level code clones via Clone() before writes.
func (t *Real) Data() []float64 { return t.data }

// Shape returns the tensor's shape.
func (t *Real) Shape() []int { return t.shape }

// Rank is len(Shape()).
func (t *Real) Rank() int { return len(t.shape) }

// Clone deep-copies the tensor.
func (t *Real) Clone() *Real {
	d := make([]float64, len(t.data))
	copy(d, t.data)
	s := make([]int, len(t.shape))
	copy(s, t.shape)
	return &Real{data: d, shape: s}
}

// Equal is structural equality (spec 3.1).
func (t *Real) Equal(o *Real) bool {
	if len(t.shape) != len(o.shape) {
		return false
	}
	for i := range t.shape {
		if t.shape[i] != o.shape[i] {
			return false
		}
	}
	for i := range t.data {
		if t.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Zeros, Ones, Eye, Linspace are the construction builtins of spec 4.2.
func Zeros(shape []int) (*Real, error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	return &Real{data: make([]float64, Size(shape)), shape: append([]int(nil), shape...)}, nil
}

func Ones(shape []int) (*Real, error) {
	t, err := Zeros(shape)
	if err != nil {
		return nil, err
	}
	for i := range t.data {
		t.data[i] = 1
	}
	return t, nil
}

func Eye(n int) (*Real, error) {
	if n < 1 {
		return nil, &ValueError{Msg: "eye: n must be >= 1"}
	}
	t, _ := Zeros([]int{n, n})
	for i := 0; i < n; i++ {
		t.data[i*n+i] = 1
	}
	return t, nil
}

// Linspace returns n samples from a to b inclusive (n >= 2 required by
// spec 4.2; step = (b-a)/(n-1)).
func Linspace(a, b float64, n int) (*Real, error) {
	if n < 2 {
		return nil, &ValueError{Msg: "linspace: n must be >= 2"}
	}
	step := (b - a) / float64(n-1)
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i] = a + step*float64(i)
	}
	data[n-1] = b
	return &Real{data: data, shape: []int{n}}, nil
}

// FromFlat1D builds a rank-1 Real tensor from a []float64 literal (FromRows
// below builds the rank-2 case from [][]float64), matching how the
// parser/evaluator constructs tensors from array/vector literals of numerics.
func FromFlat1D(vals []float64) *Real {
	return &Real{data: append([]float64(nil), vals...), shape: []int{len(vals)}}
}

func FromRows(rows [][]float64) (*Real, error) {
	if len(rows) == 0 {
		return nil, &EmptyError{Msg: "tensor: empty matrix literal"}
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for _, r := range rows {
		if len(r) != cols {
			return nil, &ShapeError{Msg: "tensor: ragged matrix literal"}
		}
		data = append(data, r...)
	}
	return &Real{data: data, shape: []int{len(rows), cols}}, nil
}

// strides returns the row-major strides for shape (last axis fastest).
func strides(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

// String implements the canonical pretty-printer of spec 4.1: rank 1
// prints as "[v1, v2, ...]"; higher ranks print with delimiters per axis,
// row-major.
func (t *Real) String() string {
	var b strings.Builder
	printReal(&b, t.data, t.shape)
	return b.String()
}

func printReal(b *strings.Builder, data []float64, shape []int) {
	if len(shape) == 1 {
		b.WriteByte('[')
		for i, v := range data {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatFloat(v))
		}
		b.WriteByte(']')
		return
	}
	b.WriteByte('[')
	chunk := Size(shape[1:])
	for i := 0; i < shape[0]; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		printReal(b, data[i*chunk:(i+1)*chunk], shape[1:])
	}
	b.WriteByte(']')
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
